package dice

import "go.uber.org/zap"

var (
	d10  = MustParse("d10")
	d100 = MustParse("d100")
)

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with expression, dice values, modifier, and total.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src must be non-nil. A nil logger is replaced by a no-op logger.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Roll evaluates expr and logs the result at debug level.
//
// Precondition: expr must come from Parse.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// D10 rolls a single ten-sided die.
//
// Postcondition: 1 <= result <= 10.
func (r *Roller) D10() int {
	return r.Roll(d10).Total()
}

// D100 rolls a percentile die.
//
// Postcondition: 1 <= result <= 100.
func (r *Roller) D100() int {
	return r.Roll(d100).Total()
}
