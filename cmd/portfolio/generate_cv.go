package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/jonathan/portfolio-site/internal/cv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	generateCVLang string
	generateCVAll  bool
	generateCVOut  string
	generateCVPDF  bool
)

var generateCVCmd = &cobra.Command{
	Use:   "generate-cv",
	Short: "Generate the downloadable CV document",
	Long:  "Builds the self-contained CV document for one language (or every language with --all) and writes it into the output directory, optionally printing it to PDF with headless Chrome.",
	RunE:  runGenerateCV,
}

func init() {
	generateCVCmd.Flags().StringVarP(&generateCVLang, "lang", "l", "", "Language code (defaults to the configured default language)")
	generateCVCmd.Flags().BoolVar(&generateCVAll, "all", false, "Generate the CV for every language in the translation table")
	generateCVCmd.Flags().StringVarP(&generateCVOut, "out", "o", ".", "Output directory")
	generateCVCmd.Flags().BoolVar(&generateCVPDF, "pdf", false, "Also write a PDF rendition (requires Chrome)")
	generateCVCmd.MarkFlagsMutuallyExclusive("lang", "all")
	rootCmd.AddCommand(generateCVCmd)
}

// cvOutput is one written CV file.
type cvOutput struct {
	doc  *cv.Document
	path string
	pdf  string
}

func runGenerateCV(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := loadApp(ctx, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	var pdfOpts *cv.PDFOptions
	if generateCVPDF {
		if pdfOpts, err = a.pdfOptions(); err != nil {
			return err
		}
	}

	codes := []string{generateCVLang}
	switch {
	case generateCVAll:
		codes = a.store.Languages()
	case generateCVLang == "":
		codes = []string{a.cfg.DefaultLanguage}
	}

	outputs, err := generateCVs(ctx, a.generator(), codes, cv.DirSink{Dir: generateCVOut}, pdfOpts)
	if err != nil {
		return err
	}

	printCVOutputs(cmd.OutOrStdout(), a, outputs)
	return nil
}

// generateCVs builds and writes one CV per code concurrently. Generation is
// pure, so the documents can be built in parallel; the first failure cancels
// the remaining PDF renders.
func generateCVs(ctx context.Context, gen *cv.Generator, codes []string, sink cv.DirSink, pdfOpts *cv.PDFOptions) ([]cvOutput, error) {
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	outputs := make([]cvOutput, 0, len(codes))

	for _, code := range codes {
		g.Go(func() error {
			doc, err := gen.Generate(code)
			if err != nil {
				return err
			}
			if err := cv.Deliver(doc.Artifact(), sink); err != nil {
				return err
			}
			out := cvOutput{doc: doc, path: sink.Path(doc.Filename)}

			if pdfOpts != nil {
				artifact, err := cv.RenderPDF(gctx, doc, pdfOpts)
				if err != nil {
					return err
				}
				if err := cv.Deliver(artifact, sink); err != nil {
					return err
				}
				out.pdf = sink.Path(artifact.Filename)
			}

			mu.Lock()
			outputs = append(outputs, out)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(outputs, func(i, j int) bool { return outputs[i].doc.Language < outputs[j].doc.Language })
	return outputs, nil
}

func printCVOutputs(w io.Writer, a *app, outputs []cvOutput) {
	for _, out := range outputs {
		if a.printer != nil {
			a.printer.PrintCVDocument(out.doc, out.path)
		} else {
			_, _ = fmt.Fprintf(w, "Successfully wrote %s\n", out.path)
		}
		if out.pdf != "" {
			_, _ = fmt.Fprintf(w, "Successfully wrote %s\n", out.pdf)
		}
	}
}
