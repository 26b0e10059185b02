package extract

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfText reads the text-showing operators of every page.
func pdfText(data []byte) (string, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return "", fmt.Errorf("pdfcpu read: %w", err)
	}
	var pages []string
	for nr := 1; nr <= ctx.PageCount; nr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, nr)
		if err != nil || r == nil {
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil {
			continue
		}
		if t := streamText(content); t != "" {
			pages = append(pages, t)
		}
	}
	return strings.Join(pages, "\n\n"), nil
}

var pdfString = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// streamText collects string operands of Tj, TJ and ' and turns line moves
// into breaks.
func streamText(content []byte) string {
	var sb strings.Builder
	for _, line := range bytes.Split(content, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfString.FindAllSubmatch(line, -1) {
				sb.WriteString(unescapePDF(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			sb.WriteByte('\n')
			for _, m := range pdfString.FindAllSubmatch(line, -1) {
				sb.WriteString(unescapePDF(m[1]))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")), bytes.Equal(line, []byte("T*")):
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		}
	}
	lines := strings.Split(sb.String(), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func unescapePDF(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 == len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			v := int(c - '0')
			for k := 0; k < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; k++ {
				i++
				v = v*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(v))
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
