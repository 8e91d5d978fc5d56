package repositories

import "strings"

// likeEscape is the ESCAPE clause paired with containsPattern.
const likeEscape = ` ESCAPE '\'`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s literally anywhere in the column.
func containsPattern(s string) string {
	return "%" + likeReplacer.Replace(s) + "%"
}
