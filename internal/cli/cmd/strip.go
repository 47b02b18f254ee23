package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/bnema/tabgroups/internal/application/usecase"
	"github.com/bnema/tabgroups/internal/cli"
	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/bnema/tabgroups/internal/logging"
)

var errAppNotInitialized = errors.New("app not initialized")

// stripAction runs against a restored session. It reports whether the strip
// changed and must be saved.
type stripAction func(app *cli.App, s *usecase.StripSession) (changed bool, err error)

// withStrip restores the strip selected by --strip, runs fn, and writes the
// strip back when fn changed it. create starts an empty strip when none is
// stored.
func withStrip(create bool, fn stripAction) error {
	app := GetApp()
	if app == nil {
		return errAppNotInitialized
	}

	out, err := app.OpenStrip(app.StripID(stripFlag), create)
	if err != nil {
		return fmt.Errorf("open strip: %w", err)
	}
	s := out.Session
	defer func() {
		if cerr := s.Close(); cerr != nil {
			logging.FromContext(app.Ctx()).Warn().Err(cerr).Msg("failed to close strip session")
		}
	}()

	changed, err := fn(app, s)
	if err != nil {
		return err
	}
	if !changed && !out.NeedsSave() {
		return nil
	}
	if err := app.SaveStrip(s); err != nil {
		return fmt.Errorf("save strip: %w", err)
	}
	return nil
}

func parseTabID(s string) (entity.TabID, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return entity.NoTabID, fmt.Errorf("invalid tab id %q", s)
	}
	return entity.TabID(n), nil
}

func parseTabIDs(args []string) ([]entity.TabID, error) {
	ids := make([]entity.TabID, 0, len(args))
	for _, arg := range args {
		id, err := parseTabID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return n, nil
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
