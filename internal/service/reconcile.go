package service

import "strings"

// Reconcile maps a freshly detected label onto an existing inventory name.
// Every existing name is checked in order; when either lower-cased string
// contains the other, the candidate becomes that name. Scanning continues
// after a match, so the last matching name in list order wins.
func Reconcile(candidate string, existingNames []string) string {
	result := candidate
	for _, name := range existingNames {
		lowerResult := strings.ToLower(result)
		lowerName := strings.ToLower(name)
		if strings.Contains(lowerResult, lowerName) || strings.Contains(lowerName, lowerResult) {
			result = name
		}
	}
	return result
}
