package config

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"

	"motogpanalytics/pkg/analysis"
	"motogpanalytics/pkg/fuel"
	"motogpanalytics/pkg/traffic"
)

const (
	dfltDBPath        = "./motogp-laps.db"
	dfltDataDir       = "./data/motogp"
	dfltListenAddress = ":8080"
	dfltSeasonYear    = 2023

	// declared session distances; qualifying runs are much shorter
	dfltRaceTotalLaps = 27
	dfltQualTotalLaps = 12
)

type Conf struct {
	srcPath string

	DBPath        string `json:"dbPath"`
	DataDir       string `json:"dataDir"`
	ListenAddress string `json:"listenAddress"`
	SeasonYear    int    `json:"seasonYear"`

	RaceTotalLaps int `json:"raceTotalLaps"`
	QualTotalLaps int `json:"qualTotalLaps"`

	Fuel              fuel.Params     `json:"fuel"`
	TrafficZThreshold float64         `json:"trafficZThreshold"`
	Analysis          analysis.Config `json:"analysis"`

	TelegramToken   string  `json:"telegramToken"`
	TelegramChatIDs []int64 `json:"telegramChatIds"`
}

func (c *Conf) SourcePath() string {
	return c.srcPath
}

// Load reads a JSON config file and fills in defaults for anything the file
// leaves out. An empty path yields a pure-default configuration.
func Load(path string) *Conf {
	conf := &Conf{}
	if path != "" {
		rawData, err := os.ReadFile(path)
		if err != nil {
			log.Fatal().Err(err).Msg("Cannot load config")
		}
		conf.srcPath = path
		if err := json.Unmarshal(rawData, conf); err != nil {
			log.Fatal().Err(err).Msg("Cannot load config")
		}
	}
	ApplyDefaults(conf)
	return conf
}

func ApplyDefaults(conf *Conf) {
	if conf.DBPath == "" {
		conf.DBPath = dfltDBPath
	}
	if conf.DataDir == "" {
		conf.DataDir = dfltDataDir
	}
	if conf.ListenAddress == "" {
		conf.ListenAddress = dfltListenAddress
	}
	if conf.SeasonYear == 0 {
		conf.SeasonYear = dfltSeasonYear
	}
	if conf.RaceTotalLaps == 0 {
		conf.RaceTotalLaps = dfltRaceTotalLaps
	}
	if conf.QualTotalLaps == 0 {
		conf.QualTotalLaps = dfltQualTotalLaps
	}
	if conf.Fuel.BurnRate == 0 && conf.Fuel.Alpha == 0 {
		conf.Fuel = fuel.DefaultParams()
	}
	if conf.TrafficZThreshold == 0 {
		conf.TrafficZThreshold = traffic.DefaultZThreshold
	}
	dfltAnalysis := analysis.DefaultConfig()
	if conf.Analysis.WarmupLaps == 0 {
		conf.Analysis.WarmupLaps = dfltAnalysis.WarmupLaps
	}
	if conf.Analysis.DNFCompletionRatio == 0 && conf.Analysis.DNFLapFloor == 0 {
		conf.Analysis.DNFCompletionRatio = dfltAnalysis.DNFCompletionRatio
	}
	if conf.Analysis.HighDegradeThreshold == 0 {
		conf.Analysis.HighDegradeThreshold = dfltAnalysis.HighDegradeThreshold
	}
	if conf.Analysis.InconsistencyThreshold == 0 {
		conf.Analysis.InconsistencyThreshold = dfltAnalysis.InconsistencyThreshold
	}
}
