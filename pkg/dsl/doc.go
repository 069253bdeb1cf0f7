/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing form definitions.

It allows developers to define multi-step wizards using a type-safe, fluent builder pattern
instead of relying on external YAML or JSON files. This is particularly useful for dynamic form
generation, unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/formwise/pkg/dsl"
	)

	func main() {
		b := dsl.NewForm("apply-for-juggling-licence").
			Title("Apply for a juggling licence")

		b.Step("applicant-details").
			Title("Your details").
			Text("full_name", "What is your full name?").Required().
			Radio("applying_for_other", "Are you applying for someone else?", "Yes", "No").Required()

		b.Step("other-applicant").
			Title("Their details").
			Text("other_name", "What is their full name?").Required()

		b.Step("summary").
			Title("Check your answers")

		// Skip the other-applicant step when applying for yourself.
		b.Rule("summary").
			When("applicant-details", "applying_for_other", "No")

		form, err := b.Build()
		// ... register the form with a memory.Source and pass it to formwise.New(...)
	}
*/
package dsl
