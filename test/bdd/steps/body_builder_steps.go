package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/colonybot/internal/domain/spawning"
)

type bodyBuilderContext struct {
	spec  spawning.BodySpec
	built spawning.BuiltBody
	ok    bool
}

func (bc *bodyBuilderContext) reset() {
	bc.spec = spawning.BodySpec{}
	bc.built = spawning.BuiltBody{}
	bc.ok = false
}

func parsePartList(raw string) ([]spawning.BodyPart, error) {
	var parts []spawning.BodyPart
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		part, ok := spawning.ParseBodyPart(name)
		if !ok {
			return nil, fmt.Errorf("unknown body part %q", name)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func (bc *bodyBuilderContext) aBodyWithDefaultPartsAndExtraParts(defaults, extras string) error {
	var err error
	if bc.spec.DefaultParts, err = parsePartList(defaults); err != nil {
		return err
	}
	bc.spec.ExtraParts, err = parsePartList(extras)
	return err
}

func (bc *bodyBuilderContext) aCostCeilingOfWithMinimumCost(ceiling, minCost int) error {
	bc.spec.CostCeiling = ceiling
	bc.spec.MinCost = minCost
	return nil
}

func (bc *bodyBuilderContext) atMostExtraParts(maxExtra int) error {
	bc.spec.MaxExtraParts = maxExtra
	return nil
}

func (bc *bodyBuilderContext) theBodyIsBuilt() error {
	bc.built, bc.ok = spawning.BuildBody(bc.spec)
	return nil
}

func (bc *bodyBuilderContext) theBuildShouldBe(outcome string) error {
	switch outcome {
	case "successful":
		if !bc.ok {
			return fmt.Errorf("expected the build to succeed")
		}
	case "impossible":
		if bc.ok {
			return fmt.Errorf("expected no body, got %v", bc.built.Body.Strings())
		}
	default:
		return fmt.Errorf("unknown outcome %q", outcome)
	}
	return nil
}

func (bc *bodyBuilderContext) theBodyShouldHavePartsCosting(parts, cost int) error {
	if len(bc.built.Body) != parts {
		return fmt.Errorf("expected %d parts, got %d", parts, len(bc.built.Body))
	}
	if bc.built.Cost != cost {
		return fmt.Errorf("expected cost %d, got %d", cost, bc.built.Cost)
	}
	return nil
}

// InitializeBodyBuilderScenario registers body construction steps
func InitializeBodyBuilderScenario(ctx *godog.ScenarioContext) {
	bc := &bodyBuilderContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		bc.reset()
		return ctx, nil
	})

	ctx.Step(`^a body with default parts "([^"]*)" and extra parts "([^"]*)"$`, bc.aBodyWithDefaultPartsAndExtraParts)
	ctx.Step(`^a cost ceiling of (\d+) with minimum cost (\d+)$`, bc.aCostCeilingOfWithMinimumCost)
	ctx.Step(`^at most (\d+) extra parts$`, bc.atMostExtraParts)
	ctx.Step(`^the body is built$`, bc.theBodyIsBuilt)
	ctx.Step(`^the build should be (successful|impossible)$`, bc.theBuildShouldBe)
	ctx.Step(`^the body should have (\d+) parts costing (\d+)$`, bc.theBodyShouldHavePartsCosting)
}
