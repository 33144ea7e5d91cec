package plot

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

const (
	DATA_FILE    = "gracov.out"
	COMMAND_FILE = "gnuplot.cmd"

	MAX_YLABEL   = 120
	TITLE_LAYOUT = "2006-01-02-1504"
	FONT_PATH    = "/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf"
	X_AXIS_LABEL = "DAYS"

	padFirstX = "        "
	padX      = ",       "
	padY      = ",          "
)

// WriteData merges the series column-wise: for each input its day column and its selected
// column. Inputs that run out of rows are padded with blanks of the same width.
func WriteData(w io.Writer, series []*Series) error {
	bw := bufio.NewWriter(w)

	headers := make([]string, 0, 2*len(series))
	rows := 0
	for _, s := range series {
		headers = append(headers, "Day", s.Header)
		if s.Len() > rows {
			rows = s.Len()
		}
	}
	fmt.Fprintln(bw, strings.Join(headers, ","))

	for i := 0; i < rows; i++ {
		for n, s := range series {
			if i >= s.Len() {
				if n == 0 {
					bw.WriteString(padFirstX)
				} else {
					bw.WriteString(padX)
				}
				bw.WriteString(padY)
				continue
			}
			if n == 0 {
				fmt.Fprintf(bw, " %7.0f", s.X[i])
			} else {
				fmt.Fprintf(bw, ",%7.0f", s.X[i])
			}
			fmt.Fprintf(bw, ",%10.2e", s.Y[i])
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// Title stamps the plot with the UTC time it was made.
func Title(now time.Time) string {
	return "RUN  " + now.UTC().Format(TITLE_LAYOUT)
}

// YLabel joins the distinct selected headings, cut short with "..." when too long.
func YLabel(series []*Series) string {
	var sb strings.Builder
	seen := map[string]bool{}
	for _, s := range series {
		if seen[s.Header] {
			continue
		}
		seen[s.Header] = true
		if sb.Len() > 0 {
			sb.WriteString(", ")
		}
		if sb.Len()+len(s.Header) >= MAX_YLABEL {
			sb.WriteString("...")
			break
		}
		sb.WriteString(s.Header)
	}
	return sb.String()
}

// WriteCommands writes a gnuplot script that plots DATA_FILE into <first heading>.svg.
func WriteCommands(w io.Writer, series []*Series, program string, now time.Time) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#!/usr/bin/gnuplot\n#\n#\n# %s\n#\n#\n# WRITTEN BY: %s\n", COMMAND_FILE, program)
	fmt.Fprintf(bw, "#-------------------------------------------------------\n")
	fmt.Fprintf(bw, "set title \"%s\"\n", Title(now))
	fmt.Fprintf(bw, "set xlabel \"%s\"\n", X_AXIS_LABEL)
	fmt.Fprintf(bw, "set key tmargin left autotitle  columnheader nobox\n")
	fmt.Fprintf(bw, "set style fill solid 0.2\n")
	fmt.Fprintf(bw, "set terminal svg enhanced background rgb 'white' \\\ndashed font \"%s,12\"\n", FONT_PATH)
	fmt.Fprintf(bw, "set palette gray\n")
	fmt.Fprintf(bw, "set ylabel \"%s\"\n", YLabel(series))
	fmt.Fprintf(bw, "set datafile separator \",\"\n")
	fmt.Fprintf(bw, "set output \"%s.svg\"\n", series[0].Header)
	fmt.Fprintf(bw, "plot './%s' \\\n", DATA_FILE)
	for n, s := range series {
		if n == 0 {
			bw.WriteString("   ")
		} else {
			bw.WriteString("'' ")
		}
		fmt.Fprintf(bw, "  using %d:%d title \"%s\" with points", 2*n+1, 2*n+2, filepath.Base(s.Path))
		if n != len(series)-1 {
			bw.WriteString(", \\")
		}
		bw.WriteString("\n")
	}
	fmt.Fprintf(bw, "quit\n")
	return bw.Flush()
}
