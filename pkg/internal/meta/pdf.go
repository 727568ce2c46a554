package meta

import (
	"fmt"
	"strconv"

	"rsc.io/pdf"
)

// pdfSniffer 提取 PDF 页数，以及 Info 字典里的标题和作者（如果有）.
func pdfSniffer(path string, out map[string]string) error {
	r, err := pdf.Open(path)
	if err != nil {
		return fmt.Errorf("open pdf: %w", err)
	}

	out[KeyPageCount] = strconv.Itoa(r.NumPage())

	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return nil
	}

	if title := info.Key("Title"); !title.IsNull() {
		if s := title.Text(); s != "" {
			out[KeyTitle] = s
		}
	}

	if author := info.Key("Author"); !author.IsNull() {
		if s := author.Text(); s != "" {
			out[KeyAuthor] = s
		}
	}

	return nil
}

func init() {
	RegisterSniffer("application/pdf", pdfSniffer)
}
