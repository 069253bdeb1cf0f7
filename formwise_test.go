package formwise_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/formwise"
	"github.com/aretw0/formwise/internal/testutils"
	"github.com/aretw0/formwise/pkg/domain"
)

const checkoutYAML = `
id: checkout
title: Checkout
steps:
  - id: delivery
    fields:
      - name: postcode
        question: What is your postcode?
        type: text
        required: true
      - name: gift
        question: Is this a gift?
        type: radio
        required: true
        options:
          - {value: "Yes", label: "Yes"}
          - {value: "No", label: "No"}
  - id: gift-message
    fields:
      - name: message
        question: What should the card say?
        type: textarea
  - id: confirm
rules:
  - id: skip-gift-message
    conditions:
      - step_id: delivery
        field: gift
        equals: "No"
    target: confirm
`

func TestNew_FromDefinitionDir(t *testing.T) {
	dir, _ := testutils.SetupDefinitionDir(t, map[string]string{
		"checkout.yaml": checkoutYAML,
	})

	eng, err := formwise.New(dir)
	require.NoError(t, err)

	ctx := context.Background()
	ids, err := eng.Forms(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"checkout"}, ids)

	form, err := eng.Form(ctx, "checkout")
	require.NoError(t, err)
	assert.Equal(t, 3, form.StepCount())
}

func TestNew_RequiresDirOrSource(t *testing.T) {
	_, err := formwise.New("")
	assert.Error(t, err)
}

func TestNew_FailsOnBrokenDefinition(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("id: broken\nsteps: []"), 0o644))

	_, err := formwise.New(dir)
	require.Error(t, err)
	assert.NotNil(t, domain.AsConfigError(err))
}

func TestEngine_EndToEnd(t *testing.T) {
	dir, _ := testutils.SetupDefinitionDir(t, map[string]string{
		"checkout.yaml": checkoutYAML,
	})

	eng, err := formwise.New(dir)
	require.NoError(t, err)

	ctx := context.Background()
	sid := "cart-42"

	out, err := eng.ShowStep(ctx, sid, "checkout", 1)
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeRender, out.Kind)
	assert.Equal(t, "Checkout", out.View.FormTitle)

	// Not a gift: the rule skips the message step.
	out, err = eng.SubmitStep(ctx, sid, "checkout", 1, domain.Values{
		"postcode": "AB1 2CD",
		"gift":     "No",
	}, domain.ActionNext)
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeRedirect, out.Kind)
	assert.Equal(t, 3, out.Step)

	out, err = eng.SubmitStep(ctx, sid, "checkout", 3, domain.Values{}, domain.ActionSubmit)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCompleted, out.Kind)

	summary, err := eng.Summary(ctx, sid, "checkout")
	require.NoError(t, err)
	assert.Equal(t, "AB1 2CD", summary["postcode"])

	// Re-entering step 1 starts a fresh wizard.
	_, err = eng.ShowStep(ctx, sid, "checkout", 1)
	require.NoError(t, err)
	summary, err = eng.Summary(ctx, sid, "checkout")
	require.NoError(t, err)
	assert.Empty(t, summary)
}
