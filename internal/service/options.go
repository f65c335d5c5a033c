package service

import "github.com/jask/wineboard/internal/config"

// Options holds the presentation constants both dashboards share.
type Options struct {
	PreviewRows int
	QualityBins int
	PairingBins int
	TopCuisines int
	SampleSize  int
	SampleSeed  int64
	Driver      string
}

// DefaultOptions matches the config defaults.
func DefaultOptions() Options {
	return Options{
		PreviewRows: 5,
		QualityBins: 10,
		PairingBins: 5,
		TopCuisines: 15,
		SampleSize:  10,
		Driver:      config.DriverMemory,
	}
}

func OptionsFromConfig(c config.Config) Options {
	return Options{
		PreviewRows: c.UI.PreviewRows,
		QualityBins: c.UI.QualityBins,
		PairingBins: c.UI.PairingBins,
		TopCuisines: c.UI.TopCuisines,
		SampleSize:  c.UI.SampleSize,
		SampleSeed:  c.UI.SampleSeed,
		Driver:      c.Store.Driver,
	}
}
