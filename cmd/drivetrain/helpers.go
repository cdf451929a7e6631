package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/drivetrain/internal/common"
	"github.com/Veraticus/drivetrain/internal/config"
	"github.com/Veraticus/drivetrain/internal/dataset"
	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/Veraticus/drivetrain/internal/storage"
	"github.com/Veraticus/drivetrain/internal/view"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	errNoSheet      = errors.New("no sales sheet given")
	errTwoSources   = errors.New("give a sheet file or --dataset, not both")
	errUnknownType  = errors.New("unknown powertrain type")
	errUnknownModel = errors.New("unknown vehicle")
)

// addSourceFlags adds the flags that pick where the sales sheet comes from.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("dataset", "", "read a dataset stored with `drivetrain import` instead of a file")
	cmd.Flags().String("sheet", "", "worksheet of an .xlsx file (default: the first one)")
}

// setting prefers an explicitly set flag over the config key.
func setting(cmd *cobra.Command, flag, key string) string {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return f.Value.String()
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	if f := cmd.Flags().Lookup(flag); f != nil {
		return f.Value.String()
	}
	return ""
}

// loadDataset reads the sheet named by args, or the stored dataset named by
// --dataset, and aggregates it.
func loadDataset(cmd *cobra.Command, args []string) (*model.Dataset, error) {
	ctx := cmd.Context()
	opts := dataset.Options{Strict: viper.GetBool("dataset.strict")}
	name, _ := cmd.Flags().GetString("dataset")

	switch {
	case name != "" && len(args) > 0:
		return nil, errTwoSources
	case name != "":
		store, err := openStore(ctx)
		if err != nil {
			return nil, err
		}
		defer func() { _ = store.Close() }()

		ds, err := dataset.LoadFrom(ctx, store.Source(name), opts)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset %q: %w", name, err)
		}
		return ds, nil
	case len(args) == 1:
		path := config.ExpandPath(args[0])
		ds, err := dataset.LoadFrom(ctx, dataset.FileSource{Path: path, Sheet: setting(cmd, "sheet", "dataset.sheet")}, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		common.LogDebug("loaded sheet", common.Fields{"path": path, "months": ds.Months(), "vehicles": len(ds.Lineup)})
		return ds, nil
	default:
		return nil, common.NewUserError("pass a .csv or .xlsx sheet, or --dataset NAME", errNoSheet)
	}
}

// openStore opens the dataset store at storage.path, migrating it if needed.
func openStore(ctx context.Context) (*storage.SQLiteStorage, error) {
	path := viper.GetString("storage.path")
	if path == "" {
		path = config.DefaultStoragePath()
	}
	store, err := storage.Open(ctx, config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset store: %w", err)
	}
	return store, nil
}

// addTargetFlags adds --type and --vehicle.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", "", "powertrain to drill into (HEV, PHEV, BEV, FCEV)")
	cmd.Flags().String("vehicle", "", `vehicle to show alone, as "Make Model"`)
}

// targetState turns --type and --vehicle into a view state. A vehicle alone
// implies its own type.
func targetState(cmd *cobra.Command, ds *model.Dataset) (view.State, error) {
	typeName, _ := cmd.Flags().GetString("type")
	vehicle, _ := cmd.Flags().GetString("vehicle")

	var t model.TypeKey
	if typeName != "" {
		var ok bool
		if t, ok = model.ParseTypeKey(strings.ToUpper(typeName)); !ok {
			return view.State{}, fmt.Errorf("%w: %q", errUnknownType, typeName)
		}
	}

	if vehicle == "" {
		if t == "" {
			return view.Initial(), nil
		}
		return view.State{Level: view.OneType, Type: t}, nil
	}

	v, ok := ds.Vehicle(model.VehicleKey(vehicle))
	if !ok {
		return view.State{}, fmt.Errorf("%w: %q", errUnknownModel, vehicle)
	}
	if t != "" && t != v.Type {
		return view.State{}, fmt.Errorf("%w: %s is a %s", errUnknownModel, vehicle, v.Type)
	}
	return view.State{Level: view.OneVehicle, Type: v.Type, Vehicle: v.Key}, nil
}
