package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/flourish/internal/constants"
	"github.com/julianstephens/flourish/internal/engine"
	"github.com/julianstephens/flourish/internal/models"
)

type OnboardCmd struct {
	SkipAssessment bool `help:"Skip the strengths assessment and use the default selection."`
}

func (c *OnboardCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}
	if profile.Onboarded {
		fmt.Println("Profile already set up. Re-running will overwrite it.")
	}

	var partnerName, partnerPronouns, petsRaw, childrenRaw string
	if profile.Partner != nil {
		partnerName = profile.Partner.Name
		partnerPronouns = profile.Partner.Pronouns
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What's your name?").
				Value(&profile.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Your pronouns").
				Placeholder("she/her, he/him, they/them, ...").
				Value(&profile.Pronouns),
			huh.NewInput().
				Title("Your occupation").
				Value(&profile.Occupation),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Partner's name (leave empty if none)").
				Value(&partnerName),
			huh.NewInput().
				Title("Partner's pronouns").
				Value(&partnerPronouns),
			huh.NewInput().
				Title("Pets (comma separated names)").
				Value(&petsRaw),
			huh.NewInput().
				Title("Children (comma separated names)").
				Value(&childrenRaw),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("onboarding cancelled: %w", err)
	}

	profile.Partner = nil
	if strings.TrimSpace(partnerName) != "" {
		profile.Partner = &models.FamilyMember{
			Name:     strings.TrimSpace(partnerName),
			Pronouns: strings.TrimSpace(partnerPronouns),
		}
	}
	profile.Pets = parseFamilyMembers(petsRaw)
	profile.Children = parseFamilyMembers(childrenRaw)

	if c.SkipAssessment {
		profile.TopStrengths = append([]int(nil), constants.DefaultTopStrengths...)
		fmt.Println("Assessment skipped; starting with the default strengths:")
	} else {
		tops, err := runAssessment()
		if err != nil {
			return err
		}
		profile.TopStrengths = tops
		fmt.Println("Your signature strengths:")
	}

	for i, id := range profile.TopStrengths {
		fmt.Printf("  %d. %s\n", i+1, strengthName(id))
	}

	profile.Onboarded = true
	if err := profile.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveProfile(profile); err != nil {
		return err
	}

	fmt.Println("\nProfile saved. Run 'flourish today' to see your first activities.")
	return nil
}

// runAssessment asks the full question bank on a 1-5 scale, ranks the
// answers, and hands the top-ranked candidates to the user for confirmation.
// Nothing is committed until the user approves the selection.
func runAssessment() ([]int, error) {
	fmt.Println("\nAnswer each statement from 1 (not like me) to 5 (very much like me).")

	answers := make(map[int]*int, len(engine.Questions))
	var groups []*huh.Group
	var fields []huh.Field
	for _, q := range engine.Questions {
		score := 3
		answers[q.ID] = &score
		fields = append(fields, huh.NewSelect[int]().
			Title(q.Text).
			Options(
				huh.NewOption("1 - Not like me", 1),
				huh.NewOption("2", 2),
				huh.NewOption("3 - Somewhat like me", 3),
				huh.NewOption("4", 4),
				huh.NewOption("5 - Very much like me", 5),
			).
			Value(answers[q.ID]))

		// Six statements per page keeps the form readable.
		if len(fields) == 6 {
			groups = append(groups, huh.NewGroup(fields...))
			fields = nil
		}
	}
	if len(fields) > 0 {
		groups = append(groups, huh.NewGroup(fields...))
	}

	if err := huh.NewForm(groups...).Run(); err != nil {
		return nil, fmt.Errorf("assessment cancelled: %w", err)
	}

	flat := make(map[int]int, len(answers))
	for qid, score := range answers {
		flat[qid] = *score
	}

	candidates, err := assessmentCandidates(flat)
	if err != nil {
		return nil, err
	}
	return confirmStrengths(candidates)
}

// assessmentCandidates ranks the answers and returns the candidate signature
// strengths offered for confirmation, capped at the profile's selection limit.
func assessmentCandidates(answers map[int]int) ([]int, error) {
	ranked, err := engine.RankStrengths(answers)
	if err != nil {
		return nil, err
	}
	return engine.TopStrengths(ranked, models.MaxTopStrengths), nil
}

// confirmStrengths shows the full catalog with the ranked candidates
// pre-selected and lets the user adjust the selection before it is saved.
func confirmStrengths(candidates []int) ([]int, error) {
	preselected := make(map[int]bool, len(candidates))
	for _, id := range candidates {
		preselected[id] = true
	}

	var options []huh.Option[int]
	for _, s := range models.AllStrengths() {
		options = append(options, huh.NewOption(s.Name, s.ID).Selected(preselected[s.ID]))
	}

	selection := append([]int(nil), candidates...)
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[int]().
			Title("Your signature strengths").
			Description("The assessment ranked these highest. Adjust the selection before saving.").
			Options(options...).
			Limit(models.MaxTopStrengths).
			Validate(func(ids []int) error {
				if len(ids) == 0 {
					return fmt.Errorf("select at least one strength")
				}
				return nil
			}).
			Value(&selection),
	))
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}
	return selection, nil
}

func parseFamilyMembers(raw string) []models.FamilyMember {
	members := []models.FamilyMember{}
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		members = append(members, models.FamilyMember{Name: name})
	}
	return members
}
