package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/jedib0t/go-pretty/table"
	streamJSON "github.com/wal-g/json"
	"github.com/wal-g/seqdata/pkg/seqdata"
	"github.com/wal-g/seqdata/pkg/seqfile"
	"github.com/wal-g/seqdata/utility"
	"github.com/wal-g/tracelog"
)

type InfoLogger interface {
	Println(v ...interface{})
}

type ErrorLogger interface {
	FatalOnError(err error)
}

type Logging struct {
	InfoLogger  InfoLogger
	ErrorLogger ErrorLogger
}

// ChunkDetail locates a chunk inside the chunk region of a container.
type ChunkDetail struct {
	Index  int   `json:"index"`
	Offset int64 `json:"offset"`
	Size   int64 `json:"size"`
}

func DefaultHandleChunkList(path string, format seqdata.Format, bufferSize int, pretty, asJSON bool) {
	getChunksFunc := func() ([]ChunkDetail, error) {
		return GetChunkDetails(path, format, bufferSize)
	}
	writeChunkListFunc := func(chunks []ChunkDetail) {
		switch {
		case asJSON:
			tracelog.ErrorLogger.FatalOnError(WriteAsJSON(chunks, os.Stdout, pretty))
		case pretty:
			WritePrettyChunkList(chunks, os.Stdout)
		default:
			WriteChunkList(chunks, os.Stdout)
		}
	}
	logging := Logging{
		InfoLogger:  tracelog.InfoLogger,
		ErrorLogger: tracelog.ErrorLogger,
	}

	HandleChunkList(getChunksFunc, writeChunkListFunc, logging)
}

func HandleChunkList(
	getChunksFunc func() ([]ChunkDetail, error),
	writeChunkListFunc func([]ChunkDetail),
	logging Logging,
) {
	chunks, err := getChunksFunc()
	logging.ErrorLogger.FatalOnError(err)
	if len(chunks) == 0 {
		logging.InfoLogger.Println("No chunks found")
		return
	}

	writeChunkListFunc(chunks)
}

// GetChunkDetails walks the container without keeping chunk bodies in memory.
func GetChunkDetails(path string, format seqdata.Format, bufferSize int) ([]ChunkDetail, error) {
	reader, _, err := seqfile.Open(path, format, bufferSize)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	chunks := make([]ChunkDetail, 0)
	for {
		offset := reader.Position()
		body, size, err := reader.NextReader()
		if err == io.EOF {
			return chunks, nil
		}
		if err == nil {
			_, err = io.Copy(io.Discard, body)
		}
		if err != nil {
			return chunks, err
		}
		chunks = append(chunks, ChunkDetail{Index: len(chunks), Offset: offset, Size: size})
	}
}

func WriteChunkList(chunks []ChunkDetail, output io.Writer) {
	writer := tabwriter.NewWriter(output, 0, 0, 1, ' ', 0)
	defer writer.Flush()
	fmt.Fprintln(writer, "index\toffset\tsize")
	for _, c := range chunks {
		_, _ = fmt.Fprintf(writer, "%v\t%v\t%v\n", c.Index, c.Offset, c.Size)
	}
}

func WritePrettyChunkList(chunks []ChunkDetail, output io.Writer) {
	writer := table.NewWriter()
	writer.SetOutputMirror(output)
	defer writer.Render()
	writer.AppendHeader(table.Row{"#", "Offset", "Size"})
	for _, c := range chunks {
		writer.AppendRow(table.Row{c.Index, c.Offset, c.Size})
	}
}

// WriteAsJSON streams data to output unless pretty output is requested.
// output is left open.
func WriteAsJSON(data interface{}, output io.Writer, pretty bool) error {
	if !pretty {
		return streamJSON.Marshal(data, utility.NopWriteCloser{Writer: output})
	}
	bytes, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return err
	}
	_, err = output.Write(bytes)
	return err
}
