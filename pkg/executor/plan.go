package executor

import (
	"github.com/arthur-debert/dosetup/pkg/recipe"
	"github.com/arthur-debert/dosetup/pkg/types"
)

// PlannedApplication is what would run for one application
type PlannedApplication struct {
	Name       string               `yaml:"name"`
	SkipIf     *types.CommandConfig `yaml:"skip_if,omitempty"`
	Operations []types.Operation    `yaml:"operations"`
}

// Plan lists the expanded operations of every application that has a recipe
// for the platform, in declaration order
type Plan struct {
	Platform     string               `yaml:"platform"`
	Applications []PlannedApplication `yaml:"applications"`
}

// BuildPlan prepares doc and resolves every application for platformID
// without running anything
func BuildPlan(doc *types.Document, platformID string) (*Plan, error) {
	if err := Prepare(doc); err != nil {
		return nil, err
	}

	plan := &Plan{Platform: platformID, Applications: []PlannedApplication{}}
	for _, app := range doc.Applications {
		concrete, err := recipe.ResolveRecipe(app, platformID)
		if err != nil {
			return nil, err
		}
		if concrete == nil {
			continue
		}
		plan.Applications = append(plan.Applications, PlannedApplication{
			Name:       app.Name,
			SkipIf:     concrete.SkipIf,
			Operations: concrete.Operations,
		})
	}
	return plan, nil
}
