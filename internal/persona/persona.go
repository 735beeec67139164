// Package persona turns a schedule into the text of a supportive letter.
//
// A letter is assembled from a salutation, an acknowledgment of the schedule
// with one clause per recognised emotion, the persona's supportive text and a
// closing. Supportive text is either the persona's fixed passage or a uniform
// pick from its pool, depending on the Selection the caller asks for.
package persona

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/sakif/your-yoda/internal/model"
)

// Selection chooses how the supportive text is picked.
type Selection int

const (
	// Fixed always uses the persona's fixed passage.
	Fixed Selection = iota
	// Random picks uniformly from the persona's pool.
	Random
)

// Request is the input for one letter.
type Request struct {
	Recipient   string // display name of the schedule owner
	Kind        model.PersonaKind
	Name        string // persona display name, may be empty
	Description string // the schedule content
	Emotions    []model.Emotion
}

// RequestFor builds a Request from a schedule and its owner's display name.
func RequestFor(recipient string, s *model.Schedule) Request {
	return Request{
		Recipient:   recipient,
		Kind:        s.SenderType,
		Name:        s.SenderName,
		Description: s.Content,
		Emotions:    s.Emotions,
	}
}

// Library renders letters with an injected random source.
type Library struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New creates a Library. A nil rnd is replaced by a time-seeded source; pass a
// seeded source in tests to make Random selection reproducible.
func New(rnd *rand.Rand) *Library {
	if rnd == nil {
		seed := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Library{rnd: rnd}
}

// Compose renders a letter body.
func (l *Library) Compose(req Request, sel Selection) string {
	return Render(req, sel, l.intN)
}

func (l *Library) intN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.IntN(n)
}

// Render assembles a letter. pick(n) must return a value in [0, n) and is only
// called for Random selection, so Fixed rendering is deterministic.
func Render(req Request, sel Selection, pick func(n int) int) string {
	set := FragmentSetFor(req.Kind, req.Name)

	recipient := strings.TrimSpace(req.Recipient)
	if recipient == "" {
		recipient = "friend"
	}

	var b strings.Builder

	b.WriteString("To " + recipient + ",\n\n")
	b.WriteString("Dear " + recipient + ",\n\n")

	b.WriteString(`I understand you're preparing for "` + strings.TrimSpace(req.Description) + `".`)
	for _, ec := range emotionClauses {
		if model.HasEmotion(req.Emotions, ec.emotion) {
			b.WriteString(" " + ec.clause)
		}
	}
	b.WriteString("\n\n")

	b.WriteString(supportiveText(set, sel, pick))

	b.WriteString("\n\n" + set.Valediction + "\n" + set.sign(req.Name))

	return b.String()
}

func supportiveText(set *FragmentSet, sel Selection, pick func(n int) int) string {
	if sel == Random && len(set.Pool) > 0 && pick != nil {
		return set.Pool[pick(len(set.Pool))]
	}
	return set.Fixed
}
