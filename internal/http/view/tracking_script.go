package view

import (
	"bytes"
	"text/template"
)

// TrackingScriptData provides the dynamic fields for the in-page shim.
type TrackingScriptData struct {
	CollectURL string
}

// The shim observes one page load and forwards raw events to the relay, which
// normalizes them and delivers them to the collector. It reads the website id
// from its own script URL; without one it logs a warning and does nothing.
var trackingScriptTmpl = template.Must(template.New("tracking_script").Parse(`(function() {
  var script = document.currentScript;
  if (!script || !script.src) {
    return;
  }

  var params = new URLSearchParams(script.src.split('?')[1] || '');
  var websiteId = params.get('website');
  if (!websiteId) {
    console.warn('No website ID specified in tracking script query parameters.');
    return;
  }

  var sessionKey = 'wa_session_id';
  var sessionId = sessionStorage.getItem(sessionKey);
  if (!sessionId) {
    sessionId = Math.random().toString(36).slice(2) + Date.now().toString(36);
    sessionStorage.setItem(sessionKey, sessionId);
  }

  function sendEvent(type, extra) {
    var payload = Object.assign({
      websiteId: websiteId,
      sessionId: sessionId,
      type: type,
      url: window.location.href,
      userAgent: navigator.userAgent
    }, extra || {});

    fetch('{{.CollectURL}}', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify(payload),
      keepalive: true
    }).catch(function(error) {
      console.error('Tracking error:', error);
    });
  }

  // Page view immediately; the relay derives unique visitors from it.
  sendEvent('page_view');

  // Every click bubbling to the document, unfiltered.
  document.addEventListener('click', function(e) {
    var target = e.target;
    sendEvent('click', {
      element: target.tagName,
      elementId: target.id || null,
      classes: target.className || null
    });
  });

  // Leaving within 5 seconds counts as a bounce; the relay applies the rule.
  var startTime = Date.now();
  window.addEventListener('beforeunload', function() {
    sendEvent('unload', {durationMs: Date.now() - startTime});
  });
})();
`))

// TrackingScript renders the shim for the given relay collect endpoint.
func TrackingScript(data TrackingScriptData) (string, error) {
	var buf bytes.Buffer
	if err := trackingScriptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
