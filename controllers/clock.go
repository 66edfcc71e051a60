package controllers

import "time"

// nowFunc supplies the current time to handlers so the rule engines stay
// deterministic under test.
var nowFunc = time.Now
