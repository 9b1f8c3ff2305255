package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"chargecast/config"
	"chargecast/core/charger"
	"chargecast/core/congestion"
	"chargecast/core/demand"
	"chargecast/core/model"
	coremetrics "chargecast/core/metrics"
	"chargecast/core/poller"
	"chargecast/infra/api"
	"chargecast/infra/logger"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <station-id>",
	Short: "Fetch one station and print its congestion classification",
	Args:  cobra.ExactArgs(1),
	RunE:  classify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func classify(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := api.New(cfg.API)
	coord := poller.New(client, cfg.Poller, logger.New("classify-command"), coremetrics.NopSink{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	detail, err := coord.Detail(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetch station: %w", err)
	}
	sum := detail.Summary()
	now := time.Now()
	out := struct {
		StationID      string                    `json:"stationId"`
		Name           string                    `json:"name"`
		Classification congestion.Classification `json:"classification"`
		Predicted      int                       `json:"predicted"`
		Computable     bool                      `json:"computable"`
		Sessions       []chargingSession         `json:"sessions,omitempty"`
	}{
		StationID:      sum.StationID,
		Name:           sum.Info.Name,
		Classification: congestion.ClassifySummary(sum, now.Hour()),
		Sessions:       chargingSessions(detail.Chargers, now),
	}
	out.Predicted, out.Computable = demand.PredictVisitCount(sum.Demand, sum.Info.UsingChargers, now.Hour())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

type chargingSession struct {
	ChargerID      string `json:"chargerId"`
	ChargingFor    string `json:"chargingFor"`
	FinishEstimate string `json:"finishEstimate,omitempty"`
}

// chargingSessions reports, for each charger with a fresh charging session,
// how long it has been running and when it should finish.
func chargingSessions(units []model.ChargerUnit, now time.Time) []chargingSession {
	var out []chargingSession
	for _, u := range units {
		if !charger.IsFresh(u.Status, u.LastStartAt, now) {
			continue
		}
		start, err := model.ParseTimestamp(u.LastStartAt)
		if err != nil {
			continue
		}
		s := chargingSession{
			ChargerID:   u.ChargerID,
			ChargingFor: charger.FormatElapsed(start, now),
		}
		if kw, ok := u.OutputKW(); ok {
			finish := charger.EstimateFinish(start, kw, now)
			if finish.After(now) {
				s.FinishEstimate = finish.Format(time.RFC3339)
			}
		}
		out = append(out, s)
	}
	return out
}
