package reconcile

// ClassifyVolume extracts the bundle size class from a variant volume tag.
// The first digit between 1 and 4 wins; anything else yields SizeSmall.
func ClassifyVolume(text string) SizeClass {
	for _, r := range text {
		if r >= '1' && r <= '4' {
			return SizeClass(string(r))
		}
	}
	return SizeSmall
}
