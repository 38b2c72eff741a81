package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mikey/mailsift/internal/config"
	"github.com/mikey/mailsift/internal/core"
	"github.com/mikey/mailsift/internal/formatter"
	"go.uber.org/zap"
)

// ServiceFactory builds a message service bound to a resolved API key
type ServiceFactory func(apiKey string) (*core.MessageService, error)

// ResolveCredentials resolves the API key before anything touches the
// network. Fails the invocation when no key is available.
func ResolveCredentials(cfg *config.Config) Stage {
	return func(ctx context.Context, inv *Invocation) error {
		key, err := cfg.ResolveAPIKey(inv.APIKeyFlag)
		if err != nil {
			return err
		}
		inv.APIKey = key
		return nil
	}
}

// LoadInputs reads the input message and, for analyze, the detections file.
// Input files that are not raw email messages (by extension) are treated as
// enriched message data models.
func LoadInputs() Stage {
	return func(ctx context.Context, inv *Invocation) error {
		content, err := os.ReadFile(inv.InputPath)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}

		if inv.Command == CommandAnalyze && !strings.EqualFold(filepath.Ext(inv.InputPath), ".eml") {
			inv.DataModel = string(content)
		} else {
			inv.RawMessage = string(content)
		}

		if inv.DetectionsPath != "" {
			raw, err := os.ReadFile(inv.DetectionsPath)
			if err != nil {
				return fmt.Errorf("failed to read detections file: %w", err)
			}
			detections, err := parseDetections(raw)
			if err != nil {
				return fmt.Errorf("failed to parse detections file: %w", err)
			}
			inv.Detections = detections
		}

		return nil
	}
}

// Invoke calls the remote service and records the result on the invocation
func Invoke(newService ServiceFactory) Stage {
	return func(ctx context.Context, inv *Invocation) error {
		svc, err := newService(inv.APIKey)
		if err != nil {
			return err
		}

		switch inv.Command {
		case CommandEnrich:
			inv.Result, err = svc.Enrich(ctx, inv.RawMessage)
		case CommandAnalyze:
			inv.Result, err = svc.Analyze(ctx, &core.AnalyzeRequest{
				Message:    inv.RawMessage,
				DataModel:  inv.DataModel,
				Detections: inv.Detections,
			})
		default:
			err = fmt.Errorf("unknown command: %s", inv.Command)
		}
		return err
	}
}

// EmitResult formats the result and writes it to the output target. For
// enrich without an explicit output file, a JSON copy is additionally
// written to <input basename>.mdm regardless of the selected format; an
// explicit output file suppresses the copy.
func EmitResult(logger *zap.Logger) Stage {
	return func(ctx context.Context, inv *Invocation) error {
		fmtr, err := formatter.ForFormat(inv.Format)
		if err != nil {
			return err
		}
		output, err := fmtr.Format(inv.Result)
		if err != nil {
			return err
		}

		if inv.OutputPath != "" {
			if err := writeFile(inv.OutputPath, output); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(inv.Stdout, output)
		}

		if inv.Command == CommandEnrich && inv.OutputPath == "" {
			artifactPath := defaultArtifactName(inv.InputPath)
			jsonOutput, err := formatter.JSONFormatter{}.Format(inv.Result)
			if err != nil {
				return err
			}
			if err := writeFile(artifactPath, jsonOutput); err != nil {
				return err
			}
			logger.Info("Wrote enriched message data model", zap.String("file", artifactPath))
		}

		return nil
	}
}

// defaultArtifactName strips the input file's extension and appends the
// artifact suffix; the file lands in the current directory.
func defaultArtifactName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".mdm"
}

// writeFile writes the output followed by a single terminating newline
func writeFile(path, output string) error {
	if err := os.WriteFile(path, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// parseDetections parses a detections file. A JSON array of detection
// objects is passed through; otherwise the file is read line by line, one
// detection rule per non-empty line, with # starting a comment line.
func parseDetections(raw []byte) ([]core.Detection, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var detections []core.Detection
		if err := json.Unmarshal(raw, &detections); err != nil {
			return nil, err
		}
		return detections, nil
	}

	var detections []core.Detection
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		detections = append(detections, core.Detection{Detection: line})
	}
	if len(detections) == 0 {
		return nil, fmt.Errorf("no detections found")
	}
	return detections, nil
}
