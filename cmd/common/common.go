package common

import (
	"github.com/GiGurra/boa/pkg/boa"
	"github.com/joho/godotenv"
)

func DefaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}

// LoadDotEnv loads KARAOKE_* settings from a .env file in the working directory, if any.
// Variables already set in the environment win.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}
