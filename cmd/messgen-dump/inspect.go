package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lk2023060901/messgen-go/application"
	"github.com/lk2023060901/messgen-go/internal/compress"
	"github.com/lk2023060901/messgen-go/internal/json"
	"github.com/lk2023060901/messgen-go/internal/schema/demo"
	"github.com/lk2023060901/messgen-go/pkg/arena"
	"github.com/lk2023060901/messgen-go/pkg/messgen"
	"github.com/lk2023060901/messgen-go/pkg/metrics"
	"github.com/lk2023060901/messgen-go/pkg/util/conc"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type inspectOptions struct {
	format     string
	loose      bool
	workers    int
	metricsOut string
}

func inspectCmd(app *application.Application) *cobra.Command {
	var opts inspectOptions

	cmd := &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Print every complete frame in one or more files",
		Long: `Print every complete frame in one or more frame files.
Files compressed with zstd are detected and decompressed first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codecOpts := []messgen.Option{messgen.WithLogger(app.Logger())}
			if opts.loose {
				codecOpts = append(codecOpts, messgen.WithStrict(false))
			}
			if opts.metricsOut != "" {
				metrics.Register(metrics.GetRegisterer())
				codecOpts = append(codecOpts, messgen.WithMetrics(true))
			}
			codec := messgen.NewCodecFromConfig(app.Config().Codec, codecOpts...)

			reports, err := inspectFiles(codec, args, opts.workers)
			if err != nil {
				return err
			}
			for _, report := range reports {
				if err := writeReport(cmd.OutOrStdout(), report, opts.format); err != nil {
					return err
				}
				app.Logger().Debug("inspect finished",
					zap.String("file", report.File),
					zap.Int("frames", len(report.Frames)),
					zap.Int("trailing", report.Trailing),
				)
			}

			if opts.metricsOut != "" {
				return prometheus.WriteToTextfile(opts.metricsOut, prometheus.DefaultGatherer)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format: text or json")
	cmd.Flags().BoolVar(&opts.loose, "loose", false, "accept message bodies that leave payload bytes unconsumed")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 0, "number of files inspected concurrently (0 means GOMAXPROCS)")
	cmd.Flags().StringVar(&opts.metricsOut, "metrics-out", "", "write codec metrics in Prometheus text format to this file")
	return cmd
}

// inspectFiles 并发检查多个文件，结果按参数顺序返回。
func inspectFiles(codec *messgen.Codec, files []string, workers int) ([]inspectReport, error) {
	z, err := compress.NewZstd(1)
	if err != nil {
		return nil, err
	}
	defer z.Close()

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(files))
	pool := conc.NewPool[inspectReport](workers)
	defer pool.Release()

	futures := make([]*conc.Future[inspectReport], 0, len(files))
	for _, file := range files {
		futures = append(futures, pool.Submit(func() (inspectReport, error) {
			data, compressed, err := readFrames(z, file)
			if err != nil {
				return inspectReport{}, err
			}
			report := inspect(codec, file, data)
			report.Compressed = compressed
			return report, nil
		}))
	}
	if err := conc.AwaitAll(futures...); err != nil {
		return nil, err
	}
	return lo.Map(futures, func(f *conc.Future[inspectReport], _ int) inspectReport {
		return f.Value()
	}), nil
}

// readFrames 读取文件内容，zstd 压缩的文件先解压。
func readFrames(z *compress.Zstd, file string) ([]byte, bool, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, false, err
	}
	if !compress.IsZstd(data) {
		return data, false, nil
	}
	plain, err := z.Decompress(nil, data)
	if err != nil {
		return nil, true, errors.Wrapf(err, "decompress %s", file)
	}
	return plain, true, nil
}

type frameReport struct {
	Offset  int    `json:"offset"`
	TypeID  uint8  `json:"type_id"`
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Message any    `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type inspectReport struct {
	File       string        `json:"file"`
	Compressed bool          `json:"compressed,omitempty"`
	Size       int           `json:"size"`
	Consumed   int           `json:"consumed"`
	Trailing   int           `json:"trailing"`
	Stop       string        `json:"stop,omitempty"`
	Frames     []frameReport `json:"frames"`
}

// trackView 是 demo.Track 的可序列化视图。
type trackView struct {
	ID     uint16       `json:"id"`
	Label  string       `json:"label"`
	Points []demo.Point `json:"points"`
}

func inspect(codec *messgen.Codec, file string, data []byte) inspectReport {
	a := arena.New(len(data))
	defer a.Release()

	report := inspectReport{
		File:   file,
		Size:   len(data),
		Frames: []frameReport{},
	}
	offset := 0
	report.Consumed = codec.Walk(data, func(d messgen.Descriptor) {
		fr := frameReport{
			Offset: offset,
			TypeID: d.TypeID,
			Name:   demo.Name(d.TypeID),
			Size:   int(d.Size),
		}
		offset += d.TotalSize()

		m := demo.New(d.TypeID)
		if m == nil {
			report.Frames = append(report.Frames, fr)
			return
		}
		if err := codec.Decode(d, m, a); err != nil {
			fr.Error = err.Error()
		} else {
			fr.Message = view(m)
		}
		report.Frames = append(report.Frames, fr)
	})
	report.Trailing = len(data) - report.Consumed
	if report.Trailing > 0 {
		if _, err := messgen.DecodeHeader(data[report.Consumed:]); err != nil {
			report.Stop = err.Error()
		}
	}
	return report
}

// view 把消息转换为不引用 arena 内存的值。
func view(m messgen.Message) any {
	switch m := m.(type) {
	case *demo.Track:
		return trackView{
			ID:     m.ID,
			Label:  string(m.Label),
			Points: m.Points.Points(),
		}
	case *demo.Raw:
		return struct {
			Body []byte `json:"body"`
		}{Body: append([]byte(nil), m.Body...)}
	default:
		return m
	}
}

func writeReport(w io.Writer, report inspectReport, format string) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case formatText:
		for _, fr := range report.Frames {
			fmt.Fprintf(w, "%8d  type=%-3d %-12s size=%-5d", fr.Offset, fr.TypeID, fr.Name, fr.Size)
			switch {
			case fr.Error != "":
				fmt.Fprintf(w, " error: %s", fr.Error)
			case fr.Message != nil:
				fmt.Fprintf(w, " %+v", fr.Message)
			}
			fmt.Fprintln(w)
		}
		if report.Compressed {
			fmt.Fprintf(w, "%s (zstd): ", report.File)
		} else {
			fmt.Fprintf(w, "%s: ", report.File)
		}
		fmt.Fprintf(w, "%d frames, %d of %d bytes consumed, %d trailing\n",
			len(report.Frames), report.Consumed, report.Size, report.Trailing)
		if report.Stop != "" {
			fmt.Fprintf(w, "stopped: %s\n", report.Stop)
		}
		return nil
	default:
		return errors.Newf("unknown format %q, want %s or %s", format, formatText, formatJSON)
	}
}
