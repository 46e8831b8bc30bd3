package main

import (
	"github.com/spf13/cobra"
	"github.com/thorn-jmh/errorst"
	"tracegen/pkg/manifest"
	"tracegen/pkg/tracegen"
)

var (
	importPath   string
	utraceSrc    string
	utraceHdr    string
	perfettoHdr  string
	manifestPath string
	decoderSrc   string
	decoderPkg   string
)

var rootCmd = &cobra.Command{
	Use:           "tracegen -p <template-dir> --utrace-src <c> --utrace-hdr <h> --perfetto-hdr <h>",
	Short:         "Generate GPU tracepoint instrumentation code",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry()
		if err != nil {
			return err
		}

		if manifestPath != "" {
			m, err := manifest.FromYAMLFile(manifestPath)
			if err != nil {
				return err
			}
			if err := m.Apply(reg); err != nil {
				return errorst.Wrap(err, "failed to apply manifest %s", manifestPath)
			}
		}

		return tracegen.Generate(reg, tracegen.Options{
			SrcPath:         utraceSrc,
			HdrPath:         utraceHdr,
			PerfettoHdrPath: perfettoHdr,
			TemplateDir:     importPath,
			CtxParam:        ctxParam,
			ToggleName:      toggleName,
			DecoderPath:     decoderSrc,
			DecoderPackage:  decoderPkg,
		})
	},
}

func init() {
	rootCmd.Flags().StringVarP(&importPath, "import-path", "p", "", "generation template directory")
	rootCmd.Flags().StringVar(&utraceSrc, "utrace-src", "", "instrumentation source output path")
	rootCmd.Flags().StringVar(&utraceHdr, "utrace-hdr", "", "instrumentation header output path")
	rootCmd.Flags().StringVar(&perfettoHdr, "perfetto-hdr", "", "perfetto metadata header output path")
	rootCmd.Flags().StringVar(&manifestPath, "manifest", "", "extra tracepoint manifest (YAML)")
	rootCmd.Flags().StringVar(&decoderSrc, "decoder-src", "", "Go decoder descriptor output path")
	rootCmd.Flags().StringVar(&decoderPkg, "decoder-pkg", "tudecode", "package name for --decoder-src")

	for _, flag := range []string{"import-path", "utrace-src", "utrace-hdr", "perfetto-hdr"} {
		_ = rootCmd.MarkFlagRequired(flag)
	}
}
