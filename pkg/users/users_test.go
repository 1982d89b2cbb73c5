package users

import (
	"testing"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/catalog"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

// Completion routes answers under their question id, so profile columns
// that mirror a form question must use the exact question id as header.
func TestProfileColumnsMatchFormQuestionIDs(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	for _, column := range []string{COL_LANGUAGE, COL_FULL_NAME, COL_RELEVANT_EXPERIENCE} {
		question, err := c.Get(column)
		if err != nil {
			t.Errorf("unexpected: users column %q is not a form question id", column)
			continue
		}
		if question.SaveTo != types.SAVE_TO_USERS {
			t.Errorf("unexpected save target for %q: %s", column, question.SaveTo)
		}
	}
}
