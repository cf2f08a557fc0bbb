package components

const stylesheet = `
:root { --ink: #0f172a; --muted: #64748b; --accent: #f97316; --panel: #fff7ed; --line: #e2e8f0; }
* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, sans-serif; color: var(--ink); background: #fff; }
a { color: inherit; }
.navbar { display: flex; align-items: center; gap: 1rem; padding: 1rem 2rem; border-bottom: 1px solid var(--line); }
.nav-links { display: flex; gap: 1.5rem; list-style: none; margin: 0 0 0 auto; padding: 0; }
.logo { font-weight: 800; font-size: 1.25rem; }
.badge { font-size: .75rem; font-weight: 600; padding: .125rem .5rem; border-radius: 999px; background: var(--panel); color: var(--accent); }
.hero { text-align: center; padding: 4rem 2rem 2rem; }
.hero h1 { font-size: 2.5rem; margin: 0 0 1rem; }
.hero-note { color: var(--muted); }
.btn { display: inline-block; padding: .5rem 1rem; border-radius: .5rem; border: 0; background: var(--accent); color: #fff; text-decoration: none; font-weight: 600; cursor: pointer; }
.btn[disabled] { opacity: .5; cursor: not-allowed; }
.demo { max-width: 48rem; margin: 2rem auto; border: 1px solid var(--line); border-radius: 1rem; overflow: hidden; }
.demo-header { display: flex; align-items: center; gap: .5rem; padding: .75rem 1rem; background: var(--panel); }
.dot { width: .5rem; height: .5rem; border-radius: 50%; background: #22c55e; }
.demo-messages { max-height: 32rem; overflow-y: auto; padding: 1rem; display: flex; flex-direction: column; gap: .75rem; }
.demo-empty { text-align: center; color: var(--muted); }
.presets { display: flex; flex-wrap: wrap; gap: .5rem; justify-content: center; }
.preset { border: 1px solid var(--line); background: #fff; border-radius: 999px; padding: .375rem .75rem; cursor: pointer; }
.message { max-width: 85%; padding: .75rem 1rem; border-radius: .75rem; }
.message p { margin: 0; white-space: pre-wrap; }
.message.user { align-self: flex-end; background: var(--ink); color: #fff; }
.message.assistant { align-self: flex-start; background: #f8fafc; border: 1px solid var(--line); }
.citation { display: inline-flex; align-items: center; justify-content: center; min-width: 1.1rem; height: 1.1rem; margin: 0 .1rem; font-size: .65rem; font-weight: 700; border-radius: 999px; background: var(--accent); color: #fff; text-decoration: none; vertical-align: super; }
.sources { margin-top: .75rem; font-size: .8rem; color: var(--muted); }
.sources ul { list-style: none; padding: 0; margin: .25rem 0 0; }
.sources li { display: flex; gap: .375rem; align-items: baseline; }
.chips { display: flex; flex-wrap: wrap; gap: .375rem; margin-top: .5rem; }
.chip { font-size: .7rem; padding: .125rem .5rem; border-radius: 999px; background: var(--panel); color: var(--accent); }
.loading { color: var(--muted); display: flex; gap: .5rem; align-items: center; }
.spinner { width: .9rem; height: .9rem; border: 2px solid var(--line); border-top-color: var(--accent); border-radius: 50%; animation: spin 1s linear infinite; }
@keyframes spin { to { transform: rotate(360deg); } }
.demo-error { margin: 0 1rem; color: #dc2626; font-size: .875rem; }
.composer { display: flex; gap: .5rem; padding: 1rem; border-top: 1px solid var(--line); }
.composer form:first-child { display: flex; flex: 1; gap: .5rem; }
.composer input { flex: 1; padding: .5rem .75rem; border: 1px solid var(--line); border-radius: .5rem; }
.reset { background: none; border: 0; color: var(--muted); cursor: pointer; }
.how-it-works { max-width: 64rem; margin: 4rem auto; padding: 0 2rem; text-align: center; }
.subtitle { color: var(--muted); }
.flow-row { display: flex; flex-wrap: wrap; gap: 1rem; justify-content: center; margin: 1.5rem 0; }
.card { flex: 1 1 12rem; text-align: left; border: 1px solid var(--line); border-radius: .75rem; padding: 1rem; }
.card p { color: var(--muted); font-size: .875rem; }
.card .icon { display: block; font-size: 1.5rem; }
.flow-core { background: var(--panel); border-radius: 1rem; padding: 1rem; }
.audience ul { padding-left: 1rem; font-size: .875rem; }
.closing { font-style: italic; }
.flow-loop { margin-top: 1.5rem; }
.footer { text-align: center; padding: 2rem; border-top: 1px solid var(--line); color: var(--muted); }
`
