package pipeline

import (
	"github.com/backmassage/assetopt/internal/config"
)

// ImageJob builds the WebP job: one group per configured directory.
func ImageJob(cfg *config.Config, conv Converter) Job {
	groups := make([]Group, 0, len(cfg.ImageDirs))
	for _, dir := range cfg.ImageDirs {
		groups = append(groups, Group{
			Label: dir,
			Source: DirSource{
				Dir:        dir,
				Extensions: cfg.ImageExtensions,
				TargetExt:  ".webp",
			},
		})
	}
	return Job{
		Name:       "images",
		Noun:       "images",
		Groups:     groups,
		Converter:  conv,
		SkipPolicy: cfg.SkipPolicy,
		DryRun:     cfg.DryRun,
	}
}

// ModelJob builds the Draco job: a single group of configured pairs.
func ModelJob(cfg *config.Config, conv Converter) Job {
	return Job{
		Name:       "models",
		Noun:       "models",
		Groups:     []Group{{Label: "3D models", Source: PairSource(cfg.ModelPairs)}},
		Converter:  conv,
		SkipPolicy: cfg.SkipPolicy,
		DryRun:     cfg.DryRun,
	}
}
