package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"imgfilter/config"
	app "imgfilter/internal/application"
	"imgfilter/internal/container"
	"imgfilter/internal/domain/entity"
	"imgfilter/internal/logger"
)

var (
	modelPath    string
	threshold    float64
	invert       bool
	roi          string
	printScore   bool
	manifestPath string
	outPath      string
	userID       int64
	limit        int
)

// loadConfig накладывает флаги командной строки поверх окружения
func loadConfig(cmd *commander.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	cmd.Flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.PosterizedModel = modelPath
		case "threshold":
			cfg.Threshold = threshold
		case "invert":
			cfg.InvertThreshold = invert
		}
	})
	return cfg, logger.NewConsole(cfg.LogLevel), nil
}

func verifyFlags(cmd *commander.Command, required []string) error {
	for _, name := range required {
		f := cmd.Flag.Lookup(name)
		if f == nil || f.Value.String() == "" {
			cmd.Usage()
			return fmt.Errorf("required flag -%s not set", name)
		}
	}
	return nil
}

func predictCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runPredict,
		UsageLine: "predict [options] <image>...",
		Short:     "checks images for posterization",
		Long: `
checks images for posterization and prints one verdict per image

	$ imgfilter predict [-model <file>] [-threshold 0.5] [-invert] [-roi x,y,w,h] [-score] <image>...

`,
		Flag: *flag.NewFlagSet("predict", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&modelPath, "model", "", "Model file (default: MODEL_DIR/posterized.yml)")
	cmd.Flag.Float64Var(&threshold, "threshold", entity.DefaultThresholdValue, "Decision threshold")
	cmd.Flag.BoolVar(&invert, "invert", false, "Defect when score is below the threshold")
	cmd.Flag.StringVar(&roi, "roi", "", "Region of interest x,y,width,height")
	cmd.Flag.BoolVar(&printScore, "score", false, "Print scores along with verdicts")
	return cmd
}

func runPredict(cmd *commander.Command, args []string) error {
	if len(args) == 0 {
		cmd.Usage()
		return fmt.Errorf("no images given")
	}

	var region *entity.Region
	if roi != "" {
		r, err := entity.ParseRegion(roi)
		if err != nil {
			return err
		}
		region = &r
	}

	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	posterized, err := container.PosterizedFilter(cfg, true)
	if err != nil {
		return err
	}
	bank := app.NewFilterBank(log, posterized)

	failed := 0
	for _, path := range args {
		inspection, err := bank.Inspect(path, region, nil)
		if err != nil {
			log.Error("predict", err, map[string]interface{}{"image": path})
			failed++
			continue
		}
		for _, p := range inspection.Predictions {
			if printScore {
				fmt.Printf("%s\t%s\t%.4f\t%t\n", path, p.Filter, p.Score, p.Positive)
			} else {
				fmt.Printf("%s\t%s\t%t\n", path, p.Filter, p.Positive)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(args))
	}
	return nil
}

func trainCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runTrain,
		UsageLine: "train -manifest <file> -out <file>",
		Short:     "trains the posterization filter",
		Long: `
trains the posterization filter on a YAML manifest of labeled images

	$ imgfilter train -manifest samples.yml -out models/posterized.yml

`,
		Flag: *flag.NewFlagSet("train", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&manifestPath, "manifest", "", "Training manifest (YAML)")
	cmd.Flag.StringVar(&outPath, "out", "", "Where to save the trained model")
	return cmd
}

func runTrain(cmd *commander.Command, args []string) error {
	if err := verifyFlags(cmd, []string{"manifest", "out"}); err != nil {
		return err
	}

	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	posterized, err := container.PosterizedFilter(cfg, false)
	if err != nil {
		return err
	}
	return app.NewTrainingService(log).TrainFromManifest(posterized, manifestPath, outPath)
}

func historyCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runHistory,
		UsageLine: "history -user <id> [-limit 10]",
		Short:     "prints recent predictions of a user",
		Long: `
prints recent predictions of a user from the DB_PATH database

	$ imgfilter history -user 42 -limit 10

`,
		Flag: *flag.NewFlagSet("history", flag.ExitOnError),
	}
	cmd.Flag.Int64Var(&userID, "user", 0, "User id")
	cmd.Flag.IntVar(&limit, "limit", 10, "Number of predictions")
	return cmd
}

func runHistory(cmd *commander.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.DBPath == "" {
		return fmt.Errorf("DB_PATH is not set")
	}

	history, closeHistory, err := container.History(cfg)
	if err != nil {
		return err
	}
	defer closeHistory()

	predictions, err := history.Recent(context.Background(), userID, limit)
	if err != nil {
		return err
	}
	for _, p := range predictions {
		fmt.Fprintf(os.Stdout, "%s\t%s\t%s\t%.4f\t%t\n",
			p.CreatedAt.Format("2006-01-02 15:04:05"), p.ImagePath, p.Filter, p.Score, p.Positive)
	}
	return nil
}
