package spectral

// Stats summarizes one spectral curve
type Stats struct {
	Samples          int     `json:"samples"`
	PeakPowerMw      float64 `json:"peak_power_mw"`
	PeakWavelengthNm float64 `json:"peak_wavelength_nm"`
	MeanPowerMw      float64 `json:"mean_power_mw"`
	BandwidthNm      float64 `json:"bandwidth_nm"` // widest contiguous span at or above half the peak
}

// computeStats derives curve statistics from the assembled samples
func computeStats(samples []Sample) Stats {
	stats := Stats{Samples: len(samples)}
	if len(samples) == 0 {
		return stats
	}

	sum := 0.0
	for _, sample := range samples {
		sum += sample.DetectedPowerMw
		if sample.DetectedPowerMw > stats.PeakPowerMw {
			stats.PeakPowerMw = sample.DetectedPowerMw
			stats.PeakWavelengthNm = sample.WavelengthNm
		}
	}
	stats.MeanPowerMw = sum / float64(len(samples))

	if stats.PeakPowerMw > 0 {
		stats.BandwidthNm = halfPowerBandwidth(samples, stats.PeakPowerMw/2)
	}
	return stats
}

// halfPowerBandwidth returns the wavelength span of the widest contiguous
// run of samples at or above the threshold
func halfPowerBandwidth(samples []Sample, threshold float64) float64 {
	widest := 0.0
	runStart := -1

	for i, sample := range samples {
		if sample.DetectedPowerMw >= threshold {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			width := samples[i-1].WavelengthNm - samples[runStart].WavelengthNm
			if width > widest {
				widest = width
			}
			runStart = -1
		}
	}
	if runStart >= 0 {
		width := samples[len(samples)-1].WavelengthNm - samples[runStart].WavelengthNm
		if width > widest {
			widest = width
		}
	}

	return widest
}
