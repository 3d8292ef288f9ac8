package util

// SliceContains - Checks whether val is one of the entries in arr, used to
// avoid collecting from the same data source twice
func SliceContains(arr []string, val string) bool {
	for _, v := range arr {
		if v == val {
			return true
		}
	}
	return false
}
