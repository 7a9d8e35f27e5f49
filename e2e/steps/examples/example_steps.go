package examples

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(method, path string, body any) error
	Body() []byte
	GetResponseField(field string) (any, error)
	Remember(key, value string)
	Expand(s string) string
}

// RegisterSteps registers example resource step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &exampleSteps{tc: tc}

	ctx.Step(`^I create an example named "([^"]*)"$`, steps.create)
	ctx.Step(`^I remember the response id as "([^"]*)"$`, steps.rememberID)
	ctx.Step(`^I rename example "([^"]*)" to "([^"]*)"$`, steps.rename)
	ctx.Step(`^the example list should contain "([^"]*)"$`, steps.listShouldContain)
	ctx.Step(`^the event history should contain (\d+) "([^"]*)" events?$`, steps.historyShouldContain)
}

type exampleSteps struct {
	tc TestContext
}

func (s *exampleSteps) create(_ context.Context, name string) error {
	return s.tc.Do(http.MethodPost, "/examples", map[string]string{"name": name})
}

func (s *exampleSteps) rememberID(_ context.Context, key string) error {
	v, err := s.tc.GetResponseField("id")
	if err != nil {
		return err
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return fmt.Errorf("response id is not a string: %v", v)
	}
	s.tc.Remember(key, id)
	return nil
}

func (s *exampleSteps) rename(_ context.Context, path, name string) error {
	return s.tc.Do(http.MethodPut, path, map[string]string{"name": name})
}

func (s *exampleSteps) listShouldContain(_ context.Context, name string) error {
	if err := s.tc.Do(http.MethodGet, "/examples", nil); err != nil {
		return err
	}
	var list []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(s.tc.Body(), &list); err != nil {
		return fmt.Errorf("decode list: %w", err)
	}
	for _, e := range list {
		if e.Name == name {
			return nil
		}
	}
	return fmt.Errorf("no example named %q in %s", name, s.tc.Body())
}

func (s *exampleSteps) historyShouldContain(_ context.Context, want int, eventName string) error {
	var records []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(s.tc.Body(), &records); err != nil {
		return fmt.Errorf("decode event history: %w", err)
	}
	got := 0
	for _, r := range records {
		if r.Name == eventName {
			got++
		}
	}
	if got != want {
		return fmt.Errorf("expected %d %s events, got %d", want, eventName, got)
	}
	return nil
}
