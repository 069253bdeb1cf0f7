/*
Package formwise is a configuration-driven multi-step form ("wizard")
engine. A wizard's steps, fields, and branching logic are declared in
external YAML or JSON definitions rather than code; the engine decides
which step to show next, validates submitted data, and keeps
multi-step state consistent across independent requests.

It follows a Hexagonal Architecture: the core (definition model,
field validation, navigation resolution, request orchestration) is
decoupled from adapters (session storage, HTTP transport, option
sources, renderers). This allows Formwise to sit behind any transport
and in front of any session backend.

# Key Features

  - Declarative navigation: ordered steps with global multi-condition rules and legacy per-field routing, unified in one resolver.
  - Deterministic routing: among matching rules the one informed by the most recent answer wins; backward jumps are suppressed unless the target ends the wizard.
  - Safe partial failure: a validation error never loses user input and never touches stored state.
  - Idempotent re-entry: re-submitting an already-processed step overwrites only that step's slot.
  - Load-time integrity: dangling step references fail the definition load, never a request.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/formwise"
		"github.com/aretw0/formwise/pkg/domain"
	)

	func main() {
		// Initialize the engine with definitions from ./forms
		eng, err := formwise.New("./forms")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()

		// Render step 1 (resets any previous wizard state for the session)
		outcome, err := eng.ShowStep(ctx, "session-123", "benefits", 1)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("fields:", outcome.View.Fields)

		// Submit step 1 and follow the routing decision
		outcome, err = eng.SubmitStep(ctx, "session-123", "benefits", 1,
			domain.Values{"full_name": "Ada Lovelace"}, domain.ActionNext)
		if err != nil {
			log.Fatal(err)
		}
		switch outcome.Kind {
		case domain.OutcomeRedirect:
			log.Println("next step:", outcome.Step)
		case domain.OutcomeRender:
			log.Println("validation errors:", outcome.View.Errors)
		}
	}
*/
package formwise
