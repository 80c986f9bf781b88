package domain

import "fmt"

// Method tags recognized by the driver.
const (
	MethodBash = "bash"
	MethodKeys = "keys"
	MethodWait = "wait"
)

// Action is one unit of work extracted from a document.
// Actions are immutable once extracted.
type Action struct {
	// SlideID is the 1-based number of the slide the snippet came from.
	SlideID int `json:"slide_id"`
	// Raw is the snippet text between the fences, verbatim.
	Raw     string `json:"raw"`
	Method  string `json:"method"`
	Payload string `json:"payload"`
}

// IsModifier reports whether the action only configures the next effectful action.
func (a Action) IsModifier() bool {
	return a.Method == MethodWait || a.Method == MethodKeys
}

func (a Action) String() string {
	return fmt.Sprintf("%s %q (slide %d)", a.Method, a.Payload, a.SlideID)
}

// Slide is a section of the source document.
type Slide struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

// Document is the result of extraction: every slide, and every action in
// slide order then appearance order.
type Document struct {
	Slides  []Slide  `json:"slides"`
	Actions []Action `json:"actions"`
}

// Slide returns the slide with the given number, if any.
func (d *Document) Slide(number int) (Slide, bool) {
	if number < 1 || number > len(d.Slides) {
		return Slide{}, false
	}
	return d.Slides[number-1], true
}

// DeferredModifiers holds the wait condition and terminating keystroke that
// apply to the next effectful action. The zero value has nothing pending.
type DeferredModifiers struct {
	WaitFor  string
	StopKeys string
}

// Clear drops both modifiers.
func (m *DeferredModifiers) Clear() {
	m.WaitFor = ""
	m.StopKeys = ""
}

// Empty reports whether no modifier is pending.
func (m DeferredModifiers) Empty() bool {
	return m.WaitFor == "" && m.StopKeys == ""
}
