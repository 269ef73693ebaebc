package quota

import "errors"

// ErrQuotaExceeded is returned when a caller has no plan generations left this month.
var ErrQuotaExceeded = errors.New("monthly plan quota exceeded")

// DefaultMonthlyPlans is the allowance used when none is configured.
const DefaultMonthlyPlans = 30

const periodLayout = "2006-01"
