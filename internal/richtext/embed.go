package richtext

import "regexp"

// embedSource limits iframes to the players the band links to.
var embedSource = regexp.MustCompile(`^https://(open\.spotify\.com/embed/|www\.youtube(-nocookie)?\.com/embed/)`)
