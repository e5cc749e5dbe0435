package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ymorimoto/sekisan/constants"
)

var (
	_ Reader = (*PDFReader)(nil)
	_ Reader = (*DOCXReader)(nil)
	_ Reader = (*XLSXReader)(nil)
)

func TestReaders_ForPath(t *testing.T) {
	pdf := NewPDFReader(PDFConfig{}, nil, nil)
	word := NewDOCXReader(nil)
	excel := NewXLSXReader(nil)
	rs := Readers{PDF: pdf, Word: word, Excel: excel}

	r, format := rs.ForPath("/data/keikaku.pdf")
	assert.Same(t, pdf, r)
	assert.Equal(t, constants.PDF, format)

	r, format = rs.ForPath("/data/Tekiyousho.DOCX")
	assert.Same(t, word, r)
	assert.Equal(t, constants.WORD, format)

	r, format = rs.ForPath("/data/tanka.xlsx")
	assert.Same(t, excel, r)
	assert.Equal(t, constants.EXCEL, format)

	r, format = rs.ForPath("/data/readme.txt")
	assert.Nil(t, r)
	assert.Equal(t, "", format)
}
