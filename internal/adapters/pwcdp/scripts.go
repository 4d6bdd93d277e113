package pwcdp

// Page-side functions passed to Evaluate.
const (
	jsCount = `(selector) => document.querySelectorAll(selector).length`

	jsText = `(selector) => {
  const el = document.querySelector(selector);
  return el ? (el.textContent || '').trim() : '';
}`

	jsBodyText = `() => document.body ? document.body.innerText : ''`

	jsClick = `(el) => el.click()`

	jsSetValue = `({ selector, value }) => {
  const el = document.querySelector(selector);
  if (!el) return false;
  el.value = value;
  el.dispatchEvent(new Event('input', { bubbles: true }));
  return true;
}`

	jsSetHTML = `({ selector, html, focus }) => {
  const el = document.querySelector(selector);
  if (!el) return false;
  el.innerHTML = html;
  el.dispatchEvent(new Event('input', { bubbles: true }));
  if (focus) el.focus();
  return true;
}`
)
