package hal

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Clock is a free-running hardware counter.
//
// Micros never fails and never goes backwards within one boot.
type Clock interface {
	Micros() uint64
}

// InputPin is a digital input sampled by polling.
type InputPin interface {
	Get() bool
}

// OutputPin is a minimal output pin abstraction.
type OutputPin interface {
	High()
	Low()
}

// PixelWriter receives rectangular pixel regions.
//
// The region is inclusive on both ends and px holds (x1-x0+1)*(y1-y0+1)
// pixels in row-major order. Implementations block until the region has been
// handed to the bus.
type PixelWriter interface {
	SetPixels(x0, y0, x1, y1 int, px []RGB565) error
}

// Display is a pixel panel of fixed size.
type Display interface {
	PixelWriter
	Size() (width, height int)
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
)

func (k KeyCode) String() string {
	switch k {
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyEscape:
		return "Escape"
	default:
		return "Unknown"
	}
}

// Buttons are the two user buttons of the board.
type Buttons struct {
	Up   InputPin
	Down InputPin
}

// HAL provides the only contact point between the backend and the outside world.
type HAL interface {
	Logger() Logger
	Clock() Clock
	Buttons() Buttons
	Display() Display
}
