package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"motogpanalytics/pkg/analysis"
	"motogpanalytics/pkg/config"
	"motogpanalytics/pkg/fetch"
	"motogpanalytics/pkg/ingest"
	"motogpanalytics/pkg/model"
	"motogpanalytics/pkg/notification"
	"motogpanalytics/pkg/pubsub"
	"motogpanalytics/pkg/report"
	"motogpanalytics/pkg/season"
	"motogpanalytics/pkg/store"
	"motogpanalytics/pkg/webserver"
)

const (
	actionDownload = "download"
	actionIngest   = "ingest"
	actionReport   = "report"
	actionServe    = "serve"
	actionVersion  = "version"
	actionHelp     = "help"
)

var (
	version   string
	buildDate string
	gitCommit string
)

func main() {
	confPath := flag.String("conf", "", "path to a JSON config file (defaults apply when empty)")
	csvDir := flag.String("csv-dir", "", "when set, the report action also exports CSV files there")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "MotoGP stint analytics\n\nUsage:\n  %s [options] <action>\n\nActions:\n"+
			"  %s\tfetch the season's timing sheets\n"+
			"  %s\tparse downloaded sheets into the lap store\n"+
			"  %s\tprint season degradation, sustainability, QRD and risk reports\n"+
			"  %s\texpose the analytics as a JSON API\n"+
			"  %s\tshow version info\n\nOptions:\n",
			filepath.Base(os.Args[0]), actionDownload, actionIngest, actionReport, actionServe, actionVersion)
		flag.PrintDefaults()
	}
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch flag.Arg(0) {
	case actionVersion:
		fmt.Printf("motogpanalytics %s\nbuild date: %s\nlast commit: %s\n", version, buildDate, gitCommit)
	case actionDownload:
		runDownload(config.Load(*confPath))
	case actionIngest:
		runIngest(config.Load(*confPath))
	case actionReport:
		runReport(config.Load(*confPath), *csvDir)
	case actionServe:
		runServe(config.Load(*confPath))
	case actionHelp, "":
		flag.Usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown action %q\n", flag.Arg(0))
		os.Exit(1)
	}
}

// signalContext is cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()
	return ctx, cancel
}

func runDownload(conf *config.Conf) {
	ctx, cancel := signalContext()
	defer cancel()

	downloader := fetch.NewDownloader(conf.DataDir, conf.SeasonYear)
	summary, err := downloader.DownloadSeason(ctx, fetch.Calendar2023)
	if err != nil {
		zlog.Fatal().Err(err).Msg("season download aborted")
	}
	fmt.Printf("Downloaded %d sheets (%d missing)\n", summary.Downloaded, summary.Failed)
}

func runIngest(conf *config.Conf) {
	ctx, cancel := signalContext()
	defer cancel()

	st, err := store.NewManager(conf.DBPath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("cannot open lap store")
	}
	defer st.Close()

	events := pubsub.NewPubSub[ingest.Event]()
	exitChan := make(chan bool)
	defer close(exitChan)

	if conf.TelegramToken != "" {
		bot, err := tgbotapi.NewBotAPI(conf.TelegramToken)
		if err != nil {
			zlog.Fatal().Err(err).Msg("cannot connect to telegram")
		}
		manager := notification.NewManager(ctx, bot, conf.TelegramChatIDs, events)
		go manager.Start(exitChan)
	} else {
		// drain the topic so publishing never blocks
		drain := events.Subscribe(ingest.TopicSessionIngested)
		go func() {
			for {
				select {
				case <-exitChan:
					return
				case <-drain:
				}
			}
		}()
	}

	runner := ingest.NewRunner(conf, st, events)
	if err := runner.IngestSeason(ctx, fetch.Calendar2023); err != nil {
		zlog.Fatal().Err(err).Msg("season ingestion aborted")
	}
}

func runReport(conf *config.Conf, csvDir string) {
	st, err := store.NewManager(conf.DBPath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("cannot open lap store")
	}
	defer st.Close()

	rounds, err := season.RaceSustainability(st, conf.Analysis)
	if err != nil {
		zlog.Fatal().Err(err).Msg("cannot compute sustainability")
	}
	deltas, err := season.QRD(st, conf.Analysis)
	if err != nil {
		zlog.Fatal().Err(err).Msg("cannot compute qualifying-race deltas")
	}

	report.RenderSustainability(os.Stdout, analysis.SeasonSustainabilityStats(rounds))
	report.RenderQRD(os.Stdout, analysis.SeasonQRDStats(deltas))
	report.RenderRisk(os.Stdout, analysis.AssessRisk(rounds, conf.Analysis))

	renderSessionDegradation(st, conf)

	if csvDir != "" {
		if err := os.MkdirAll(csvDir, 0755); err != nil {
			zlog.Fatal().Err(err).Msg("cannot create csv dir")
		}
		if err := report.WriteSustainabilityCSV(filepath.Join(csvDir, "isd_season.csv"), rounds); err != nil {
			zlog.Fatal().Err(err).Msg("csv export failed")
		}
		if err := report.WriteQRDCSV(filepath.Join(csvDir, "qrd_season.csv"), deltas); err != nil {
			zlog.Fatal().Err(err).Msg("csv export failed")
		}
	}
}

func renderSessionDegradation(st *store.Manager, conf *config.Conf) {
	sessions, err := st.Sessions()
	if err != nil {
		zlog.Fatal().Err(err).Msg("cannot list sessions")
	}
	for _, s := range sessions {
		if s.Type != model.SessionRace || s.LapCount == 0 {
			continue
		}
		series, err := st.SeriesForSession(s.ID)
		if err != nil {
			zlog.Error().Err(err).Str("session", s.ID).Msg("cannot load session")
			continue
		}
		fmt.Printf("\n%s (round %d, %s)\n", s.ID, s.Round, s.Circuit)
		report.RenderDegradation(os.Stdout,
			analysis.SessionEnhanced(series, conf.Analysis),
			analysis.SessionTrends(series))
	}
}

func runServe(conf *config.Conf) {
	st, err := store.NewManager(conf.DBPath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("cannot open lap store")
	}
	defer st.Close()

	webserver.NewManager(conf, st).Serve()
}
