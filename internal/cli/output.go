package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	w      io.Writer
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case []NewsArticle:
		o.printNewsList(v)
	case NewsArticle:
		o.printNewsArticle(v)
	case []Player:
		o.printPlayerList(v)
	case Player:
		o.printPlayer(v)
	case []Product:
		o.printProductList(v)
	case Product:
		o.printProduct(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// NewsArticle response type (matches API)
type NewsArticle struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// Player response type
type Player struct {
	ID           string   `json:"_id"`
	Name         string   `json:"name"`
	Nickname     string   `json:"nickname"`
	Role         string   `json:"role"`
	Game         string   `json:"game"`
	Bio          string   `json:"bio,omitempty"`
	Achievements []string `json:"achievements"`
	Stats        struct {
		Kills   int     `json:"kills"`
		Deaths  int     `json:"deaths"`
		Assists int     `json:"assists"`
		KDA     float64 `json:"kda"`
	} `json:"stats"`
}

// Product response type. Price is kept as the API's decimal string.
type Product struct {
	ID          string      `json:"_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Category    string      `json:"category"`
	InStock     bool        `json:"inStock"`
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

func (o *Output) table() *tabwriter.Writer {
	return tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
}

func (o *Output) printNewsList(articles []NewsArticle) {
	if len(articles) == 0 {
		_, _ = fmt.Fprintln(o.w, "No news articles")
		return
	}
	tw := o.table()
	_, _ = fmt.Fprintln(tw, "ID\tDATE\tAUTHOR\tTITLE")
	for _, a := range articles {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.CreatedAt.Format(time.DateOnly), a.Author, a.Title)
	}
	_ = tw.Flush()
}

func (o *Output) printNewsArticle(a NewsArticle) {
	_, _ = fmt.Fprintf(o.w, "%s\n", a.Title)
	_, _ = fmt.Fprintf(o.w, "By %s on %s\n", a.Author, a.CreatedAt.Format(time.DateOnly))
	if a.Image != "" {
		_, _ = fmt.Fprintf(o.w, "Image: %s\n", a.Image)
	}
	_, _ = fmt.Fprintf(o.w, "\n%s\n", a.Content)
}

func (o *Output) printPlayerList(players []Player) {
	if len(players) == 0 {
		_, _ = fmt.Fprintln(o.w, "No players")
		return
	}
	tw := o.table()
	_, _ = fmt.Fprintln(tw, "ID\tNICKNAME\tNAME\tROLE\tGAME")
	for _, p := range players {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Nickname, p.Name, p.Role, p.Game)
	}
	_ = tw.Flush()
}

func (o *Output) printPlayer(p Player) {
	_, _ = fmt.Fprintf(o.w, "Player: %s \"%s\" (%s)\n", p.Name, p.Nickname, p.ID)
	_, _ = fmt.Fprintf(o.w, "Role: %s\n", p.Role)
	_, _ = fmt.Fprintf(o.w, "Game: %s\n", p.Game)
	_, _ = fmt.Fprintf(o.w, "K/D/A: %d/%d/%d (KDA %.2f)\n", p.Stats.Kills, p.Stats.Deaths, p.Stats.Assists, p.Stats.KDA)
	if len(p.Achievements) > 0 {
		_, _ = fmt.Fprintf(o.w, "Achievements: %s\n", strings.Join(p.Achievements, ", "))
	}
	if p.Bio != "" {
		_, _ = fmt.Fprintf(o.w, "\n%s\n", p.Bio)
	}
}

func (o *Output) printProductList(products []Product) {
	if len(products) == 0 {
		_, _ = fmt.Fprintln(o.w, "No products")
		return
	}
	tw := o.table()
	_, _ = fmt.Fprintln(tw, "ID\tCATEGORY\tPRICE\tNAME")
	for _, p := range products {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Category, p.Price, p.Name)
	}
	_ = tw.Flush()
}

func (o *Output) printProduct(p Product) {
	stock := "yes"
	if !p.InStock {
		stock = "no"
	}
	_, _ = fmt.Fprintf(o.w, "Product: %s (%s)\n", p.Name, p.ID)
	_, _ = fmt.Fprintf(o.w, "Category: %s\n", p.Category)
	_, _ = fmt.Fprintf(o.w, "Price: %s\n", p.Price)
	_, _ = fmt.Fprintf(o.w, "In stock: %s\n", stock)
	if p.Description != "" {
		_, _ = fmt.Fprintf(o.w, "\n%s\n", p.Description)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	_, _ = fmt.Fprintf(o.w, "Storage: %s\n", h.Storage)
}
