// Command simulate runs the game headlessly for a fixed number of ticks
// with no player input and logs how long the player survived.
package main

import (
	"flag"
	"os"

	"github.com/tomz197/dodger/internal/config"
	lconfig "github.com/tomz197/dodger/internal/loop/config"
	"github.com/tomz197/dodger/internal/loop/sim"
	"github.com/tomz197/dodger/internal/object"
)

func main() {
	ticks := flag.Int("ticks", config.GetEnvInt("DODGER_SIM_TICKS", 60*60), "number of ticks to simulate")
	width := flag.Float64("width", 800, "field width")
	height := flag.Float64("height", 600, "field height")
	tuningPath := flag.String("tuning", config.GetEnv("DODGER_TUNING", ""), "YAML tuning file")
	flag.Parse()

	logger := config.NewLogger(os.Stderr, "simulate")

	tuning, err := lconfig.LoadTuningOrDefault(*tuningPath)
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}

	s := sim.NewSession(tuning, object.Field{Width: *width, Height: *height})
	if err := s.Start(); err != nil {
		logger.Fatal("failed to start", "err", err)
	}

	res := run(s, *ticks)
	logger.Info("simulation finished",
		"ticks", res.ticks,
		"phase", res.snapshot.Phase,
		"survived", res.snapshot.ScoreText()+"s",
		"enemies", len(res.snapshot.Enemies),
		"spawnInterval", res.snapshot.SpawnInterval,
		"enemySpeed", res.snapshot.EnemySpeed,
	)
}

type result struct {
	ticks    int
	snapshot *sim.Snapshot
}

// run steps s for at most n fixed ticks, stopping early on game over.
func run(s *sim.Session, n int) result {
	i := 0
	for ; i < n && s.Phase() == sim.PhasePlaying; i++ {
		s.Step(lconfig.TickTime, object.Input{})
	}
	return result{ticks: i, snapshot: s.Snapshot()}
}
