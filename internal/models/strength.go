package models

// Virtue is one of the six VIA categories grouping the 24 strengths.
type Virtue string

const (
	VirtueWisdom        Virtue = "wisdom"
	VirtueCourage       Virtue = "courage"
	VirtueHumanity      Virtue = "humanity"
	VirtueJustice       Virtue = "justice"
	VirtueTemperance    Virtue = "temperance"
	VirtueTranscendence Virtue = "transcendence"
)

// Strength is a fixed catalog entry from the VIA taxonomy. The ids are stable
// and never reused; persisted data references strengths by id only.
type Strength struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Virtue      Virtue `json:"virtue"`
	Description string `json:"description"`
}

var allStrengths = []Strength{
	{ID: 1, Name: "Love", Virtue: VirtueHumanity, Description: "Valuing close relations with others."},
	{ID: 2, Name: "Perspective", Virtue: VirtueWisdom, Description: "Providing wise counsel; having a worldview."},
	{ID: 3, Name: "Self-Regulation", Virtue: VirtueTemperance, Description: "Regulating what one feels and does."},
	{ID: 4, Name: "Curiosity", Virtue: VirtueWisdom, Description: "Taking an interest in ongoing experience."},
	{ID: 5, Name: "Appreciation of Beauty", Virtue: VirtueTranscendence, Description: "Noticing and appreciating beauty/excellence."},
	{ID: 6, Name: "Honesty", Virtue: VirtueCourage, Description: "Speaking the truth; presenting oneself genuinely."},
	{ID: 7, Name: "Spirituality", Virtue: VirtueTranscendence, Description: "Beliefs about higher purpose and meaning."},
	{ID: 8, Name: "Social Intelligence", Virtue: VirtueHumanity, Description: "Awareness of motives/feelings of self/others."},
	{ID: 9, Name: "Prudence", Virtue: VirtueTemperance, Description: "Being careful about choices; avoiding undue risk."},
	{ID: 10, Name: "Kindness", Virtue: VirtueHumanity, Description: "Doing favors and good deeds for others."},
	{ID: 11, Name: "Love of Learning", Virtue: VirtueWisdom, Description: "Mastering new skills, topics, and bodies of knowledge."},
	{ID: 12, Name: "Fairness", Virtue: VirtueJustice, Description: "Treating all people the same according to justice."},
	{ID: 13, Name: "Forgiveness", Virtue: VirtueTemperance, Description: "Forgiving those who have done wrong."},
	{ID: 14, Name: "Humility", Virtue: VirtueTemperance, Description: "Letting one's accomplishments speak for themselves."},
	{ID: 15, Name: "Creativity", Virtue: VirtueWisdom, Description: "Thinking of novel and productive ways to do things."},
	{ID: 16, Name: "Teamwork", Virtue: VirtueJustice, Description: "Working well as a member of a group or team."},
	{ID: 17, Name: "Humor", Virtue: VirtueTranscendence, Description: "Liking to laugh and tease; bringing smiles."},
	{ID: 18, Name: "Gratitude", Virtue: VirtueTranscendence, Description: "Being aware of and thankful for good things."},
	{ID: 19, Name: "Hope", Virtue: VirtueTranscendence, Description: "Expecting the best in the future."},
	{ID: 20, Name: "Zest", Virtue: VirtueCourage, Description: "Approaching life with excitement and energy."},
	{ID: 21, Name: "Perseverance", Virtue: VirtueCourage, Description: "Finishing what one starts."},
	{ID: 22, Name: "Judgment", Virtue: VirtueWisdom, Description: "Thinking things through and examining from all sides."},
	{ID: 23, Name: "Bravery", Virtue: VirtueCourage, Description: "Not shrinking from threat, challenge, or pain."},
	{ID: 24, Name: "Leadership", Virtue: VirtueJustice, Description: "Encouraging a group to get things done."},
}

// AllStrengths returns the full catalog in id order. The returned slice is a
// copy; callers may reorder it freely.
func AllStrengths() []Strength {
	out := make([]Strength, len(allStrengths))
	copy(out, allStrengths)
	return out
}

// StrengthByID looks up a catalog entry by id.
func StrengthByID(id int) (Strength, bool) {
	if id < 1 || id > len(allStrengths) {
		return Strength{}, false
	}
	return allStrengths[id-1], true
}

// ValidStrengthID reports whether id references a catalog entry.
func ValidStrengthID(id int) bool {
	_, ok := StrengthByID(id)
	return ok
}

func init() {
	// The catalog is indexed by position, so ids must stay dense and ordered.
	for i, s := range allStrengths {
		if s.ID != i+1 {
			panic("strength catalog ids must be dense and start at 1")
		}
	}
}
