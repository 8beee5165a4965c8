package preprocess

// OtsuThreshold computes a binarization threshold from a 256-bin grayscale
// histogram using Otsu's method.
//
// The method scans every candidate threshold t and picks the one maximizing
// the inter-class variance wB*wF*(mB-mF)^2 between background (values <= t)
// and foreground (values > t), where wB/wF are pixel-count weights and
// mB/mF class means. Ties resolve to the lowest t achieving the maximum.
func OtsuThreshold(hist [256]int) int {
	total := 0
	sum := 0.0
	for i, n := range hist {
		total += n
		sum += float64(i) * float64(n)
	}
	if total == 0 {
		return 127
	}

	sumB := 0.0
	wB := 0
	varMax := -1.0
	thr := 127

	for t := 0; t < 256; t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}

		sumB += float64(t) * float64(hist[t])
		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)

		between := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if between > varMax {
			varMax = between
			thr = t
		}
	}

	return thr
}
