package driver

import (
	"fmt"
	"time"
)

// fakeDateScript replaces the page's Date with one frozen at %d ms since
// the epoch. Called without new it returns the frozen time as a string, as
// Date() does. Timers are left alone so the page's own scripts keep running.
// window.__clock.restore() puts the real Date back.
const fakeDateScript = `(() => {
  const RealDate = window.Date;
  const now = %d;
  function FakeDate(...args) {
    if (!new.target) { return new RealDate(now).toString(); }
    return args.length === 0 ? new RealDate(now) : new RealDate(...args);
  }
  FakeDate.prototype = RealDate.prototype;
  FakeDate.UTC = RealDate.UTC;
  FakeDate.parse = RealDate.parse;
  FakeDate.now = () => now;
  window.Date = FakeDate;
  window.__clock = { restore() { window.Date = RealDate; delete window.__clock; } };
})();`

// restoreDateScript undoes fakeDateScript once the page has loaded.
const restoreDateScript = `() => { if (window.__clock) { window.__clock.restore(); } }`

// FakeClockScript returns the init script that freezes Date at t.
func FakeClockScript(t time.Time) string {
	return fmt.Sprintf(fakeDateScript, t.UnixMilli())
}
