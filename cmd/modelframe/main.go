// Command modelframe runs the daily flight count analysis end to end:
// load or simulate a daily counts frame, fit linear models of the given
// formula, attach predictions and residuals, and emit charts, spreadsheet
// reports, and a serialized model.
package main

import (
	"fmt"
	"os"
	"time"

	modelframe "github.com/aouyang1/go-modelframe"
	"github.com/aouyang1/go-modelframe/dataset"
	"github.com/aouyang1/go-modelframe/formula"
	"github.com/aouyang1/go-modelframe/frame"
	"github.com/aouyang1/go-modelframe/lm"
	"github.com/aouyang1/go-modelframe/models"
	"github.com/aouyang1/go-modelframe/report"
	"github.com/aouyang1/go-modelframe/stats"
	"github.com/goccy/go-json"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

func main() {
	var (
		flightsPath string
		formulaStr  string
		robust      bool
		plotPath    string
		xlsxPath    string
		modelPath   string
		simDays     int
		cvFolds     int
		profileCPU  bool
	)
	flag.StringVar(&flightsPath, "flights", "", "csv of raw flight records with year, month, day columns; simulated when empty")
	flag.StringVar(&formulaStr, "formula", "n ~ wday", "model formula fit against the daily counts frame")
	flag.BoolVar(&robust, "robust", false, "also fit an outlier resistant model")
	flag.StringVar(&plotPath, "plot", "", "write an html chart page to this path")
	flag.StringVar(&xlsxPath, "xlsx", "", "write the augmented frame to this xlsx path")
	flag.StringVar(&modelPath, "model", "", "write the serialized fitted model to this json path")
	flag.IntVar(&simDays, "sim-days", 730, "days of simulated data when no flights csv is given")
	flag.IntVar(&cvFolds, "cv-folds", 0, "score the formula on this many expanding window folds before the final fit")
	flag.BoolVar(&profileCPU, "profile", false, "write a cpu profile to the working directory")
	flag.Parse()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if profileCPU {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if err := run(log, flightsPath, formulaStr, robust, plotPath, xlsxPath, modelPath, simDays, cvFolds); err != nil {
		log.Fatal().Err(err).Msg("analysis failed")
	}
}

func run(log zerolog.Logger, flightsPath, formulaStr string, robust bool, plotPath, xlsxPath, modelPath string, simDays, cvFolds int) error {
	daily, err := loadDaily(log, flightsPath, simDays)
	if err != nil {
		return err
	}
	log.Info().Int("rows", daily.NumRows()).Msg("daily counts frame ready")

	form, err := formula.Parse(formulaStr)
	if err != nil {
		return err
	}

	if cvFolds > 0 {
		if err := crossValidate(log, daily, form, cvFolds); err != nil {
			return err
		}
	}

	olsModel, err := lm.Fit(daily, form)
	if err != nil {
		return err
	}
	logFit(log, "ols", olsModel)

	models := map[string]modelframe.FittedModel{"pred": olsModel}
	residModels := map[string]modelframe.FittedModel{"resid": olsModel}

	var robustModel *lm.LinearModel
	if robust {
		robustModel, err = lm.FitRobust(daily, form, nil)
		if err != nil {
			return err
		}
		logFit(log, "robust", robustModel)
		models["pred_robust"] = robustModel
		residModels["resid_robust"] = robustModel
	}

	augmented, err := modelframe.AddPredictions(daily, models)
	if err != nil {
		return err
	}
	augmented, err = modelframe.AddResiduals(augmented, residModels)
	if err != nil {
		return err
	}
	if err := logOutliers(log, augmented); err != nil {
		return err
	}

	exported := olsModel
	if robustModel != nil {
		exported = robustModel
	}
	model, err := exported.Model()
	if err != nil {
		return err
	}
	if err := model.TablePrint(os.Stderr); err != nil {
		return err
	}

	if modelPath != "" {
		out, err := json.MarshalIndent(model, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(modelPath, out, 0o644); err != nil {
			return err
		}
		log.Info().Str("path", modelPath).Msg("wrote model")
	}

	if plotPath != "" {
		if err := plot(augmented, robust, plotPath); err != nil {
			return err
		}
		log.Info().Str("path", plotPath).Msg("wrote charts")
	}

	if xlsxPath != "" {
		if err := report.WriteXLSX(augmented, xlsxPath, "daily"); err != nil {
			return err
		}
		log.Info().Str("path", xlsxPath).Msg("wrote report")
	}

	return nil
}

func loadDaily(log zerolog.Logger, flightsPath string, simDays int) (*frame.Frame, error) {
	if flightsPath == "" {
		log.Info().Int("days", simDays).Msg("no flight records given, simulating")
		return dataset.SimulateDailyCounts(simDays, time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC))
	}

	df, err := dataset.LoadFlights(flightsPath)
	if err != nil {
		return nil, err
	}
	return dataset.DailyCounts(df)
}

// crossValidate fits the formula on expanding window folds of the daily
// series and logs how well each fold predicts its held out block.
func crossValidate(log zerolog.Logger, daily *frame.Frame, form *formula.Formula, nFold int) error {
	dates, err := daily.Times(dataset.ColDate)
	if err != nil {
		return err
	}
	n, err := daily.Floats(dataset.ColN)
	if err != nil {
		return err
	}

	folds, err := models.TimeSeriesCVSplit(dates, n, nFold)
	if err != nil {
		return err
	}

	for i, fold := range folds {
		trainEnd := len(fold.TrainX)
		testEnd := trainEnd + len(fold.TestX)

		train := daily.Filter(func(j int) bool { return j < trainEnd })
		test := daily.Filter(func(j int) bool { return j >= trainEnd && j < testEnd })

		model, err := lm.Fit(train, form)
		if err != nil {
			return fmt.Errorf("fold %d, %w", i, err)
		}
		predicted, err := model.Predict(test)
		if err != nil {
			return fmt.Errorf("fold %d, %w", i, err)
		}
		scores, err := lm.NewScores(predicted, fold.TestY)
		if err != nil {
			return fmt.Errorf("fold %d, %w", i, err)
		}

		log.Info().
			Int("fold", i).
			Int("train_rows", train.NumRows()).
			Int("test_rows", test.NumRows()).
			Float64("mape", scores.MAPE).
			Float64("r2", scores.R2).
			Msg("cross validation fold")
	}
	return nil
}

// logOutliers reports the days whose fit residual falls outside a Tukey
// fence, typically the holiday dips the formula does not account for.
func logOutliers(log zerolog.Logger, augmented *frame.Frame) error {
	resid, err := augmented.Floats("resid")
	if err != nil {
		return err
	}
	dates, err := augmented.Times(dataset.ColDate)
	if err != nil {
		return err
	}

	for _, i := range stats.DetectOutliers(resid, 0.1, 0.9, 1.5) {
		log.Warn().
			Time("date", dates[i]).
			Float64("resid", resid[i]).
			Msg("residual outlier")
	}
	return nil
}

func logFit(log zerolog.Logger, kind string, model *lm.LinearModel) {
	scores := model.Scores()
	eq, err := model.ModelEq()
	if err != nil {
		eq = ""
	}
	log.Info().
		Str("kind", kind).
		Float64("mse", scores.MSE).
		Float64("mape", scores.MAPE).
		Float64("r2", scores.R2).
		Str("eq", eq).
		Msg("fit complete")
}

func plot(augmented *frame.Frame, robust bool, path string) error {
	fitCols := []string{"pred"}
	if robust {
		fitCols = append(fitCols, "pred_robust")
	}
	fitLine, err := modelframe.LineFit(augmented, "Daily Flights Fit", dataset.ColDate, dataset.ColN, fitCols...)
	if err != nil {
		return err
	}

	wdayScatter, err := modelframe.ScatterByCategory(augmented, "Residual by Day of Week", dataset.ColWday, "resid")
	if err != nil {
		return err
	}

	t, err := augmented.Times(dataset.ColDate)
	if err != nil {
		return err
	}
	resid, err := augmented.Floats("resid")
	if err != nil {
		return err
	}
	residLine := modelframe.LineTSeries("Fit Residual", []string{"resid"}, t, [][]float64{resid})

	return modelframe.RenderPage(path, fitLine, wdayScatter, residLine)
}
