package sheets

import (
	"fmt"
	"strings"
)

// columnLetter converts a zero-based column index to its A1 letter
// (0 -> A, 25 -> Z, 26 -> AA).
func columnLetter(index int) string {
	letters := ""
	index++
	for index > 0 {
		index--
		letters = string(rune('A'+index%26)) + letters
		index /= 26
	}
	return letters
}

// rowRange addresses a whole data row: "tab!A<row>:<lastCol><row>".
// rowNumber is 1-based as in A1 notation.
func rowRange(tab string, rowNumber int, columnCount int) string {
	last := columnLetter(columnCount - 1)
	return fmt.Sprintf("%s!A%d:%s%d", tab, rowNumber, last, rowNumber)
}

// cellRange addresses a single cell by zero-based column index.
func cellRange(tab string, rowNumber int, columnIndex int) string {
	return fmt.Sprintf("%s!%s%d", tab, columnLetter(columnIndex), rowNumber)
}

// ParseCellBool interprets the truthy cell markers the production sheet
// uses: TRUE, YES, כן, 1, V and a check mark.
func ParseCellBool(value string) bool {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "TRUE", "YES", "כן", "1", "V", "✓":
		return true
	}
	return false
}

func cellString(value interface{}) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
