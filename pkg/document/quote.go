// Package document 报价单渲染：gg 画固定版式位图，再嵌入 A4 PDF
package document

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/go-pdf/fpdf"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// A4 150dpi
const (
	PageWidth  = 1240
	PageHeight = 1754

	margin    = 80
	rowHeight = 48

	noteSize    = 18
	noteSpacing = 1.5
)

// Config 渲染配置
type Config struct {
	FontPath    string // 韩文 TTF；为空时用 goregular (不含韩文字形)
	CompanyName string
	CompanyInfo string // 多行用 \n
}

// Line 明细行
type Line struct {
	Label  string // 항목: 型号 / 选项组名
	Detail string
	Amount int64
}

// Quote 报价单版面数据
type Quote struct {
	Number     string
	IssuedAt   time.Time
	ValidUntil time.Time

	CustomerCompany string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string

	ProductName string
	Lines       []Line
	Quantity    int
	UnitName    string
	UnitPrice   int64
	LineTotal   int64
	VAT         int64
	Total       int64
	Note        string
}

// Renderer 报价单渲染器，可并发使用
type Renderer struct {
	cfg  Config
	font *truetype.Font
}

// NewRenderer 加载字体
func NewRenderer(cfg Config) (*Renderer, error) {
	ttf := goregular.TTF
	if cfg.FontPath != "" {
		data, err := os.ReadFile(cfg.FontPath)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", cfg.FontPath, err)
		}
		ttf = data
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Renderer{cfg: cfg, font: f}, nil
}

func (r *Renderer) face(size float64) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{Size: size, DPI: 72})
}

// Height 版面总高度，超过 PageHeight 时 PDF 分页
// 备注按实际折行后的行数计算高度
func (r *Renderer) Height(q *Quote) int {
	tableEnd := 590 + rowHeight*(len(q.Lines)+1)
	h := tableEnd + 350
	if q.Note != "" {
		if noted := tableEnd + 300 + int(math.Ceil(r.noteHeight(q.Note))) + 80; noted > h {
			h = noted
		}
	}
	if h < PageHeight {
		return PageHeight
	}
	return h
}

// noteHeight 与 DrawStringWrapped 相同的折行与行距
func (r *Renderer) noteHeight(note string) float64 {
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(r.face(noteSize))
	lines := dc.WordWrap(note, PageWidth-2*margin)
	fh := dc.FontHeight()
	return float64(len(lines))*fh*noteSpacing - (noteSpacing-1)*fh
}

// Pages 需要的 PDF 页数
func Pages(height int) int {
	return (height + PageHeight - 1) / PageHeight
}

// Image 画出整张报价单
func (r *Renderer) Image(q *Quote) (image.Image, error) {
	if q == nil {
		return nil, errors.New("nil quote")
	}
	height := r.Height(q)
	dc := gg.NewContext(PageWidth, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// 标题
	dc.SetFontFace(r.face(52))
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored("견 적 서", PageWidth/2, 110, 0.5, 0.5)
	dc.SetLineWidth(3)
	dc.DrawLine(margin, 160, PageWidth-margin, 160)
	dc.Stroke()

	// 左：编号与客户；右：供应商
	dc.SetFontFace(r.face(22))
	y := 210.0
	left := []string{
		"견적번호: " + q.Number,
		"견적일자: " + q.IssuedAt.Format("2006-01-02"),
	}
	if !q.ValidUntil.IsZero() {
		left = append(left, "유효기간: "+q.ValidUntil.Format("2006-01-02")+" 까지")
	}
	left = append(left, "", "수신: "+strings.TrimSpace(q.CustomerCompany+" "+q.CustomerName)+" 귀하")
	if q.CustomerEmail != "" {
		left = append(left, "이메일: "+q.CustomerEmail)
	}
	if q.CustomerPhone != "" {
		left = append(left, "연락처: "+q.CustomerPhone)
	}
	for i, s := range left {
		dc.DrawString(s, margin, y+float64(i)*36)
	}

	right := []string{}
	if r.cfg.CompanyName != "" {
		right = append(right, r.cfg.CompanyName)
	}
	for _, l := range strings.Split(r.cfg.CompanyInfo, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			right = append(right, l)
		}
	}
	for i, s := range right {
		dc.DrawStringAnchored(s, PageWidth-margin, y+float64(i)*36, 1, 0)
	}

	// 明细表
	y = 560
	dc.SetFontFace(r.face(26))
	dc.DrawString("품명: "+q.ProductName, margin, y)
	y += 30

	colDetail := float64(margin + 260)
	colAmount := float64(PageWidth - margin - 20)
	dc.SetFontFace(r.face(20))
	dc.SetRGB(0.92, 0.93, 0.95)
	dc.DrawRectangle(margin, y, PageWidth-2*margin, rowHeight)
	dc.Fill()
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored("항목", margin+20, y+rowHeight/2, 0, 0.35)
	dc.DrawStringAnchored("내용", colDetail, y+rowHeight/2, 0, 0.35)
	dc.DrawStringAnchored("금액", colAmount, y+rowHeight/2, 1, 0.35)
	y += rowHeight

	detailWidth := colAmount - colDetail - 200
	for _, l := range q.Lines {
		dc.DrawStringAnchored(truncate(dc, l.Label, 220), margin+20, y+rowHeight/2, 0, 0.35)
		dc.DrawStringAnchored(truncate(dc, l.Detail, detailWidth), colDetail, y+rowHeight/2, 0, 0.35)
		dc.DrawStringAnchored(FormatKRW(l.Amount), colAmount, y+rowHeight/2, 1, 0.35)
		dc.SetRGB(0.8, 0.8, 0.8)
		dc.SetLineWidth(1)
		dc.DrawLine(margin, y+rowHeight, PageWidth-margin, y+rowHeight)
		dc.Stroke()
		dc.SetRGB(0.1, 0.1, 0.1)
		y += rowHeight
	}

	// 合计
	y += 40
	unit := q.UnitName
	totals := [][2]string{
		{"단가", FormatKRW(q.UnitPrice)},
		{"수량", strconv.Itoa(q.Quantity) + " " + unit},
		{"공급가액", FormatKRW(q.LineTotal)},
		{"부가세 (10%)", FormatKRW(q.VAT)},
	}
	dc.SetFontFace(r.face(22))
	for _, t := range totals {
		dc.DrawString(t[0], PageWidth/2, y)
		dc.DrawStringAnchored(t[1], colAmount, y, 1, 0)
		y += 40
	}
	dc.SetLineWidth(2)
	dc.DrawLine(PageWidth/2, y-20, PageWidth-margin, y-20)
	dc.Stroke()
	dc.SetFontFace(r.face(28))
	y += 20
	dc.DrawString("합계금액", PageWidth/2, y)
	dc.DrawStringAnchored(FormatKRW(q.Total), colAmount, y, 1, 0)

	if q.Note != "" {
		y += 80
		dc.SetFontFace(r.face(noteSize))
		dc.SetRGB(0.35, 0.35, 0.35)
		dc.DrawStringWrapped(q.Note, margin, y, 0, 0, PageWidth-2*margin, noteSpacing, gg.AlignLeft)
	}

	return dc.Image(), nil
}

// PNG 编码为 PNG
func (r *Renderer) PNG(q *Quote) ([]byte, error) {
	img, err := r.Image(q)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF 每页一张 A4 切片图
func (r *Renderer) PDF(q *Quote) ([]byte, error) {
	img, err := r.Image(q)
	if err != nil {
		return nil, err
	}
	sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	})
	if !ok {
		return nil, errors.New("image does not support slicing")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pageW, _ := pdf.GetPageSize()

	height := img.Bounds().Dy()
	for i := 0; i < Pages(height); i++ {
		top := i * PageHeight
		bottom := top + PageHeight
		if bottom > height {
			bottom = height
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, sub.SubImage(image.Rect(0, top, PageWidth, bottom))); err != nil {
			return nil, fmt.Errorf("encode page %d: %w", i+1, err)
		}

		name := fmt.Sprintf("quote-page-%d", i+1)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.AddPage()
		// 高度传 0 按比例缩放
		pdf.ImageOptions(name, 0, 0, pageW, 0, false, opts, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return out.Bytes(), nil
}

func truncate(dc *gg.Context, s string, width float64) string {
	if w, _ := dc.MeasureString(s); w <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if w, _ := dc.MeasureString(candidate); w <= width {
			return candidate
		}
	}
	return ""
}

// FormatKRW 1234000 -> "1,234,000원"
func FormatKRW(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + "원"
}
