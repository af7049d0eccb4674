package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cancerdetect/internal/app"
	"cancerdetect/internal/detection"
	"cancerdetect/internal/dto"
	"cancerdetect/internal/model"
	"cancerdetect/internal/plugin"
	"cancerdetect/internal/session"
)

// cliSession is the history session id of one-shot detections.
const cliSession = "cli"

func newDetectCmd(flags *globalFlags) *cobra.Command {
	var pluginName string

	cmd := &cobra.Command{
		Use:   "detect --plugin NAME IMAGE",
		Short: "Run one plugin on one image and print the prediction",
		Example: "  cancerdetect detect --plugin lung scans/ct-0042.png\n" +
			"  cancerdetect detect --plugin skin mole.jpg --json",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.loadConfig()
			log, err := quietLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			core, err := app.NewCore(cfg, log, plugin.PolicyFailFast)
			if err != nil {
				return err
			}
			defer core.Close()

			sess := session.New(cliSession, session.PluginFirst)
			if pluginName == "" {
				return &detection.ValidationError{Message: detection.MsgSelectPlugin}
			}
			if err := sess.SelectPlugin(pluginName); err != nil {
				return err
			}
			path := args[0]
			if _, err := os.Stat(path); err != nil {
				return &detection.ValidationError{Message: fmt.Sprintf("Image not found: %s", path)}
			}
			if err := sess.SelectImage(plugin.PathImage(path)); err != nil {
				return err
			}

			name, image, err := sess.Begin()
			if err != nil {
				return err
			}
			result, err := core.Dispatcher.RunDetection(cmd.Context(), name, image)
			sess.Finish(result, err)

			if core.History != nil {
				det := &model.Detection{SessionID: cliSession, Plugin: name, ImageName: image.Name(), Outcome: model.OutcomeResult, Message: result}
				if err != nil {
					det.Outcome, det.Message = detection.Kind(err), err.Error()
				}
				if _, herr := core.History.Insert(det); herr != nil {
					log.Error("Failed to record detection: %v", herr)
				}
			}

			p := newPrinter(cmd, flags.json)
			if err != nil {
				if p.json {
					if jerr := p.JSON(dto.DetectionResponse{Status: "error", Kind: detection.Kind(err), Title: detection.Title(err), Message: err.Error()}); jerr != nil {
						return jerr
					}
				}
				return fmt.Errorf("%s: %w", detection.Title(err), err)
			}

			if p.json {
				return p.JSON(dto.DetectionResponse{Status: "ok", Result: result, Message: "Prediction: " + result})
			}
			p.Human("Prediction: %s", result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&pluginName, "plugin", "p", "", "cancer type (plugin name)")
	return cmd
}

// IsDetectionError reports whether err came from the detection taxonomy rather than from setup.
func IsDetectionError(err error) bool {
	var (
		v *detection.ValidationError
		l *detection.LoadError
		c *detection.ContractError
		e *detection.ExecutionError
	)
	return errors.As(err, &v) || errors.As(err, &l) || errors.As(err, &c) || errors.As(err, &e)
}
