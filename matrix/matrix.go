package matrix

// Matrix is the row-major working storage of the decoder
type Matrix[T float64 | int] interface {
	Shape() (int, int)
	Get(int, int) T
	Set(int, int, T)
	GetRow(int) []T
	GetCol(int) []T
}

var (
	_ Matrix[float64] = (*Float64Matrix)(nil)
	_ Matrix[int]     = (*IndexMatrix)(nil)
)
