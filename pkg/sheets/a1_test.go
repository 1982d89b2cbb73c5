package sheets

import "testing"

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		index    int
		expected string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, test := range tests {
		if got := columnLetter(test.index); got != test.expected {
			t.Errorf("columnLetter(%d): expected %s, got %s", test.index, test.expected, got)
		}
	}
}

func TestRowRange(t *testing.T) {
	if got := rowRange("Users", 5, 3); got != "Users!A5:C5" {
		t.Errorf("unexpected range: %s", got)
	}
	if got := rowRange("managed", 12, 28); got != "managed!A12:AB12" {
		t.Errorf("unexpected range: %s", got)
	}
}

func TestCellRange(t *testing.T) {
	if got := cellRange("FormStates", 3, 1); got != "FormStates!B3" {
		t.Errorf("unexpected cell: %s", got)
	}
}

func TestParseCellBool(t *testing.T) {
	truthy := []string{"TRUE", "true", "YES", "yes", "כן", "1", "V", "v", "✓", " TRUE "}
	for _, value := range truthy {
		if !ParseCellBool(value) {
			t.Errorf("expected %q to parse as true", value)
		}
	}
	falsy := []string{"", "FALSE", "no", "לא", "0", "anything"}
	for _, value := range falsy {
		if ParseCellBool(value) {
			t.Errorf("expected %q to parse as false", value)
		}
	}
}
