package persona

import (
	"strings"

	"github.com/sakif/your-yoda/internal/model"
)

// FragmentSet is everything a persona contributes to a letter.
type FragmentSet struct {
	// Key identifies the set, e.g. "celebrity-trump".
	Key string
	// Fixed is the supportive text used with Selection Fixed.
	Fixed string
	// Pool holds the alternatives Selection Random picks from.
	Pool []string
	// Valediction opens the closing ("Sincerely,").
	Valediction string
	// Signer signs the letter when the schedule gave no persona name.
	Signer string
	// SignAsSelf ignores the persona name and always signs with Signer.
	SignAsSelf bool
}

// sign returns the signature line for a persona name.
func (f *FragmentSet) sign(name string) string {
	if f.SignAsSelf {
		return f.Signer
	}
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return f.Signer
}

// FragmentSetFor picks the fragment set for a persona. Unknown kinds get the
// future-self set. A celebrity whose name mentions Trump gets its own set.
func FragmentSetFor(kind model.PersonaKind, name string) *FragmentSet {
	switch kind {
	case model.PersonaCelebrity:
		if strings.Contains(strings.ToLower(name), "trump") {
			return &trumpSet
		}
		return &celebritySet
	case model.PersonaMentor:
		return &mentorSet
	case model.PersonaLovedOne:
		return &lovedOneSet
	case model.PersonaFutureSelf:
		return &futureSelfSet
	default:
		return &futureSelfSet
	}
}

// emotionClauses are appended to the acknowledgment in this order, one per
// emotion present on the schedule.
var emotionClauses = []struct {
	emotion model.Emotion
	clause  string
}{
	{model.EmotionExcited, "Your excitement is palpable."},
	{model.EmotionTense, "It's natural to feel tense before such events."},
	{model.EmotionAnxious, "A little anxiety just means this matters to you."},
	{model.EmotionWorried, "I can tell you're worried, and that's okay."},
	{model.EmotionOverwhelmed, "If it all feels like too much right now, that feeling will pass."},
	{model.EmotionTired, "I know you're tired, so be gentle with yourself."},
	{model.EmotionConfident, "Your confidence shows how far you've come."},
	{model.EmotionMotivated, "That drive of yours is going to carry you."},
	{model.EmotionCalm, "Your calm is a quiet strength."},
	{model.EmotionHopeful, "I sense hope in your approach."},
}

var futureSelfSet = FragmentSet{
	Key: "future-self",
	Fixed: "Looking back from where I am now, I want you to know that this moment was pivotal in our growth. " +
		"The challenges you're facing today are building the foundation for who I've become.\n\n" +
		"I wish I could tell my younger self (you) to worry less about perfection and focus more on progress. " +
		"Each step forward, no matter how small, contributes to the journey.\n\n" +
		"The anxiety you feel now has transformed into confidence in my present. " +
		"What seems overwhelming today will become a story of perseverance tomorrow.\n\n" +
		"Take care of yourself during this busy time. The self-care habits you build now are still serving me well a year later.\n\n" +
		"I'm proud of you for pushing through difficult moments like these. " +
		"They've shaped me into someone stronger and more capable than you can currently imagine.",
	Pool: []string{
		"Remember how we worried about similar situations before? Those worries never materialized the way we feared. " +
			"Take a deep breath and trust yourself.",
		"What you're dealing with today is just one step in our journey. I've seen how it unfolds, " +
			"and your strength today builds our resilience for tomorrow.",
		"Looking back at this day, I realize how much this experience shaped who we became. " +
			"The emotions you feel now are valid, but they won't define your whole experience.",
	},
	Valediction: "With faith in us,",
	Signer:      "Your future self",
	SignAsSelf:  true,
}

var trumpSet = FragmentSet{
	Key: "celebrity-trump",
	Fixed: "As I've always believed, success is built on consistent effort. " +
		"Remember how I approached each game with the same focus, regardless of whether it was practice or the World Series? That's the key.\n\n" +
		"What separates professionals from amateurs isn't just talent, it's preparation. " +
		"I spent hours perfecting my swing, studying pitchers, and fine-tuning my technique. Your presentation deserves the same attention.\n\n" +
		"Don't focus on the outcome. Focus on your process. If you've prepared thoroughly, the results will follow naturally. " +
		"That's the essence of my philosophy.\n\n" +
		"Success isn't about avoiding pressure. It's about embracing it and using it as fuel.\n\n" +
		"I believe in you. Approach this presentation with the mindset of continuous improvement, and you'll shine brightly.",
	Pool: []string{
		"As I often said during my career, success is not about avoiding failures but about consistently taking the right approach. " +
			"Focus on your process rather than the outcome.",
		"In my career, I never focused on home runs. I focused on perfecting my approach, day after day. " +
			"Your consistent effort matters more than any single result.",
		"When I was preparing for important events, I felt many of the emotions you're feeling now. " +
			"What separated me was not talent, but preparation and persistence. You have what it takes to succeed today.",
	},
	Valediction: "Sincerely,",
	Signer:      "Your supporter",
}

var celebritySet = FragmentSet{
	Key: "celebrity",
	Fixed: "Remember that every expert was once a beginner. The path to mastery is paved with challenges that shape your character and skills.\n\n" +
		"I've faced countless obstacles in my career, and each one taught me something valuable. " +
		"Your current situation is no different. It's another opportunity for growth.\n\n" +
		"Focus on the process rather than the outcome. Excellence comes from consistent, deliberate effort applied over time.\n\n" +
		"Trust your preparation and embrace the moment. You have everything you need to succeed already within you.\n\n" +
		"I look forward to seeing how you rise to this occasion. " +
		"Remember, true champions aren't defined by never falling, but by how they rise after each fall.",
	Pool: []string{
		"Every stage I ever walked onto felt bigger than me at first. It never stopped mattering, " +
			"I just learned that the nerves meant I was ready to give it everything.",
		"People see the highlights, never the hours of practice behind them. " +
			"Today is one of those quiet hours that ends up making the highlight possible.",
		"The best performances I ever gave came on days I doubted myself the most. " +
			"Let the doubt come along for the ride, but don't let it drive.",
	},
	Valediction: "Sincerely,",
	Signer:      "Your supporter",
}

var mentorSet = FragmentSet{
	Key: "mentor",
	Fixed: "I've watched your progress with pride, and I know you're ready for this challenge. " +
		"The skills you've been developing are precisely what's needed now.\n\n" +
		"Remember our discussion about breaking complex tasks into manageable steps? Apply that same strategy here. " +
		"Take one segment at a time, and before you know it, you'll have mastered the whole.\n\n" +
		"It's normal to doubt yourself, but I've seen your capabilities firsthand. You've overcome similar obstacles before, and you'll do so again.\n\n" +
		"The lessons we've discussed weren't just theoretical. They were preparation for moments exactly like this one.\n\n" +
		"I believe in your potential, perhaps even more than you do right now. Trust the process we've worked on together, and allow yourself to shine.",
	Pool: []string{
		"I've watched your progress for some time now, and I know you have what it takes to handle this. " +
			"What you're feeling is natural, but it doesn't define your capabilities.",
		"I remember facing challenges like yours. The key is to break it down into smaller steps and focus on one at a time. " +
			"I believe in your ability to navigate this successfully.",
		"A good mentor doesn't give all the answers but helps you find your own path. " +
			"Trust the skills you've been developing and know that challenges are where true growth happens.",
	},
	Valediction: "Sincerely,",
	Signer:      "Your supporter",
}

var lovedOneSet = FragmentSet{
	Key: "loved-one",
	Fixed: "I just wanted to remind you how special you are to me, and how much I believe in you. Your determination has always inspired me.\n\n" +
		"Remember to take deep breaths when you feel overwhelmed. I've seen you overcome so many challenges with grace and resilience.\n\n" +
		"No matter what happens, know that I'm here for you, to celebrate your successes and support you through any difficulties.\n\n" +
		"Your kindness and dedication touch everyone around you, including me. Those qualities will shine through in everything you do.\n\n" +
		"Take care of yourself during this busy time. You deserve moments of peace and self-compassion amidst all your hard work. " +
		"I'm sending you love and positive energy.",
	Pool: []string{
		"No matter how today turns out, I want you to know how proud I am of you for trying. " +
			"What you're feeling shows how much you care, and that's something to be valued.",
		"Remember that you're never alone in this. I'm with you in spirit every step of the way, " +
			"celebrating your victories and supporting you through challenges.",
		"Families support each other through thick and thin. My love doesn't depend on outcomes or achievements. " +
			"It's unconditional and always there for you.",
	},
	Valediction: "With love and support,",
	Signer:      "Someone who cares about you",
}
