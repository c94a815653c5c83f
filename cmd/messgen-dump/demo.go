package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lk2023060901/messgen-go/application"
	"github.com/lk2023060901/messgen-go/internal/compress"
	"github.com/lk2023060901/messgen-go/internal/schema/demo"
	"github.com/lk2023060901/messgen-go/pkg/messgen"
	"github.com/lk2023060901/messgen-go/pkg/messgen/stream"
)

type demoOptions struct {
	rounds  int
	garbage int
	zstd    bool
}

func demoCmd(app *application.Application) *cobra.Command {
	var opts demoOptions

	cmd := &cobra.Command{
		Use:   "demo <file>",
		Short: "Write a file of sample demo frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := writeDemo(args[0], opts)
			if err != nil {
				return err
			}
			app.Logger().Info("demo frames written", zap.String("file", args[0]), zap.Int("bytes", n))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s\n", n, args[0])
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.rounds, "rounds", "n", 1, "number of times the sample sequence is repeated")
	cmd.Flags().IntVar(&opts.garbage, "garbage", 0, "number of trailing garbage bytes appended after the last frame")
	cmd.Flags().BoolVar(&opts.zstd, "zstd", false, "compress the whole file with zstd")
	return cmd
}

// sampleMessages 返回第 round 轮的示例消息。
func sampleMessages(round int) []messgen.Message {
	return []messgen.Message{
		&demo.Heartbeat{},
		&demo.Telemetry{
			Seq:         uint32(round),
			Temperature: int16(-40 + round),
			Voltage:     3300,
			Flags:       uint8(round & 0x0F),
		},
		&demo.Track{
			ID:    uint16(round),
			Label: []byte(fmt.Sprintf("track-%d", round)),
			Points: demo.MakePointList(
				demo.Point{X: 0, Y: 0},
				demo.Point{X: int16(round), Y: int16(-round)},
			),
		},
		&demo.Raw{Body: []byte{0xAA, 0xBB}},
	}
}

// writeDemo 写出示例帧，返回写入文件的字节数。
func writeDemo(path string, opts demoOptions) (int, error) {
	if opts.rounds < 0 || opts.garbage < 0 {
		return 0, errors.Newf("rounds and garbage must not be negative")
	}

	var buf bytes.Buffer
	w := stream.NewWriter(&buf)
	for round := 0; round < opts.rounds; round++ {
		for _, m := range sampleMessages(round) {
			if _, err := w.WriteMessage(m); err != nil {
				return 0, err
			}
		}
	}
	buf.Write(bytes.Repeat([]byte{0xEE}, opts.garbage))

	data := buf.Bytes()
	if opts.zstd {
		z, err := compress.NewZstd(1)
		if err != nil {
			return 0, err
		}
		defer z.Close()
		if data, err = z.Compress(nil, data); err != nil {
			return 0, err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, err
	}
	return len(data), nil
}
