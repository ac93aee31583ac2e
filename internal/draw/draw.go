package draw

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockMedium    = '▒'
	BlockDark      = '▓'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Shade characters from lightest to darkest.
var Shades = []rune{BlockEmpty, BlockLight, BlockMedium, BlockDark, BlockFull}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	return Shades[int(intensity*float64(len(Shades)-1))]
}

// Color is an ANSI 256-color palette index. ColorDefault keeps the terminal's
// own foreground.
type Color uint8

const (
	ColorDefault Color = 0
	ColorRed     Color = 196
	ColorOrange  Color = 208
	ColorYellow  Color = 226
	ColorGreen   Color = 46
	ColorCyan    Color = 51
	ColorBlue    Color = 33
	ColorMagenta Color = 201
	ColorGray    Color = 244
	ColorBrown   Color = 130
	ColorWhite   Color = 231
)

// PlayerColors are handed out to players by join order.
var PlayerColors = []Color{ColorCyan, ColorMagenta, ColorGreen, ColorYellow}

// CenterOffset returns the 0-based offset that centers an area of the given
// size inside the terminal. Never negative.
func CenterOffset(termWidth, termHeight, width, height int) (col, row int) {
	return max(0, (termWidth-width)/2), max(0, (termHeight-height)/2)
}
