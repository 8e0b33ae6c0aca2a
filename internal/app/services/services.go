package services

import "time"

// timeNow is swapped out in tests
var timeNow = time.Now
