package e2e

import (
	"github.com/cucumber/godog"

	"scaffold/e2e/steps/common"
	"scaffold/e2e/steps/examples"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (requests, status and field assertions)
	common.RegisterSteps(ctx, tc)

	// Register example resource steps
	examples.RegisterSteps(ctx, tc)
}
