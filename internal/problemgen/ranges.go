package problemgen

// Numeric ranges per difficulty. Lower bounds are 1 unless noted.

// PlanOperandLimits returns the operand bounds used when planning a whole
// addition or subtraction session. Both operations share one table.
func PlanOperandLimits(d Difficulty) (int, int) {
	switch d {
	case DifficultyMedium:
		return 10, 10
	case DifficultyHard:
		return 15, 10
	default:
		return 5, 5
	}
}

// OperandLimits returns the inclusive upper bounds for the first and
// second operand of op. For division the bounds are (quotient, divisor).
func OperandLimits(op Operation, d Difficulty) (int, int) {
	switch op {
	case OpAdd:
		switch d {
		case DifficultyMedium:
			return 10, 10
		case DifficultyHard:
			return 15, 15
		default:
			return 5, 5
		}
	case OpSub:
		switch d {
		case DifficultyMedium:
			return 15, 10
		case DifficultyHard:
			return 20, 15
		default:
			return 10, 5
		}
	case OpMul:
		switch d {
		case DifficultyMedium:
			return 10, 5
		case DifficultyHard:
			return 12, 10
		default:
			return 5, 3
		}
	case OpDiv:
		switch d {
		case DifficultyMedium:
			return 10, 5
		case DifficultyHard:
			return 12, 10
		default:
			return 5, 3
		}
	}
	return 5, 5
}

// DrawOperands draws a fresh operand pair for op. Subtraction operands are
// ordered so the result is non-negative. Division is built backwards from
// a divisor and a whole quotient, so a ÷ b always divides evenly.
func DrawOperands(r Rand, op Operation, d Difficulty) (a, b int) {
	maxA, maxB := OperandLimits(op, d)
	switch op {
	case OpSub:
		a, b = IntBetween(r, 1, maxA), IntBetween(r, 1, maxB)
		if b > a {
			a, b = b, a
		}
	case OpMul:
		lo := 1
		if d == DifficultyHard {
			lo = 2
		}
		a, b = IntBetween(r, lo, maxA), IntBetween(r, lo, maxB)
	case OpDiv:
		minQuotient, minDivisor := 1, 2
		if d == DifficultyEasy {
			minQuotient, minDivisor = 0, 1
		}
		quotient := IntBetween(r, minQuotient, maxA)
		divisor := IntBetween(r, minDivisor, maxB)
		a, b = quotient*divisor, divisor
	default:
		a, b = IntBetween(r, 1, maxA), IntBetween(r, 1, maxB)
	}
	return a, b
}

// ComparisonMax is the largest operand in comparison problems.
func ComparisonMax(d Difficulty) int {
	switch d {
	case DifficultyMedium:
		return 20
	case DifficultyHard:
		return 50
	default:
		return 10
	}
}

// WordOperandLimits bounds the two story numbers.
func WordOperandLimits(d Difficulty) (int, int) {
	switch d {
	case DifficultyMedium:
		return 10, 10
	case DifficultyHard:
		return 15, 10
	default:
		return 5, 5
	}
}

// FactFamilyMax bounds fact-family addends. Single problems draw each
// addend from [1, max/2]; session plans draw from [1, max].
func FactFamilyMax(d Difficulty) int {
	switch d {
	case DifficultyMedium:
		return 15
	case DifficultyHard:
		return 20
	default:
		return 10
	}
}

// SequenceLength is how many terms of a counting sequence are shown.
func SequenceLength(d Difficulty) int {
	switch d {
	case DifficultyMedium:
		return 5
	case DifficultyHard:
		return 6
	default:
		return 4
	}
}

// SequenceSteps lists the step sizes available at a difficulty.
func SequenceSteps(d Difficulty) []int {
	switch d {
	case DifficultyMedium:
		return []int{1, 2, 3, 5}
	case DifficultyHard:
		return []int{1, 2, 3, 5, 10}
	default:
		return []int{1, 2}
	}
}

var (
	startsStep1  = rangeStep(1, 50, 1)
	startsStep2  = rangeStep(2, 40, 2)
	startsStep3  = rangeStep(3, 30, 3)
	startsStep5s = rangeStep(5, 50, 5)
)

// ValidStarts returns the allowed first terms for a step size. Starts sit
// on the step's natural counting boundary: evens for 2, multiples of 3
// for 3, multiples of 5 for 5 and 10.
func ValidStarts(step int) []int {
	switch step {
	case 2:
		return startsStep2
	case 3:
		return startsStep3
	case 5, 10:
		return startsStep5s
	default:
		return startsStep1
	}
}

func rangeStep(from, to, step int) []int {
	var out []int
	for v := from; v <= to; v += step {
		out = append(out, v)
	}
	return out
}

// Layouts lists the counting layouts available at a difficulty.
func Layouts(d Difficulty) []Layout {
	if d == DifficultyEasy {
		return []Layout{LayoutLine, LayoutScattered}
	}
	return []Layout{LayoutLine, LayoutScattered, LayoutGrid}
}

// countingRange returns the target-count range and the distractor range.
func countingRange(d Difficulty) (minTarget, maxTarget, minExtra, maxExtra int) {
	switch d {
	case DifficultyMedium:
		return 4, 8, 3, 6
	case DifficultyHard:
		return 6, 11, 5, 10
	default:
		return 2, 5, 2, 4
	}
}

// CountingItems are the things a child counts.
var CountingItems = []string{"pizza", "pie", "cookie", "star", "heart", "flower", "apple", "banana"}
