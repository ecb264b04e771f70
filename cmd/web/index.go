package main

// The calculator page, embedded so the binary deploys as a single file.
// {{BUILD_VERSION}} is substituted by serveIndex.

const indexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Damage Calc</title>
  <style>
    @import url('https://fonts.googleapis.com/css2?family=Cinzel:wght@500;700&family=Montserrat:wght@400;600&display=swap');
    :root{ --bg:#0a0c10; --panel:#0f131a; --card:#0b1016; --panel-edge:#131924; --text:#e5e7eb; --muted:#9aa4b2; --gold:#c9a753; --gold-soft:#e5d5a5; --red:#b91c1c; --shadow:0 6px 20px rgba(0,0,0,.45);} *{box-sizing:border-box} html,body{height:100%}
    body{ margin:0; color:var(--text); background: radial-gradient(1200px 600px at 10% -10%, rgba(30,41,59,.35), transparent 60%), linear-gradient(180deg,#0a0c10 0%,#07090d 100%); font-family:'Montserrat', ui-sans-serif, system-ui, -apple-system, Segoe UI, Roboto, Arial; }
    header.site-header{ display:flex; align-items:center; justify-content:space-between; gap:16px; padding:14px 20px; background:linear-gradient(180deg,#0f131a,#0b0f15); border-bottom:2px solid var(--gold); box-shadow:var(--shadow); position:sticky; top:0; z-index:10; }
    .brand{display:flex; align-items:center; gap:10px} .brand .die{font-size:20px; filter:drop-shadow(0 0 6px rgba(201,167,83,.35))} .brand .wordmark{font-family:'Cinzel', serif; font-weight:700; letter-spacing:.12em; font-size:18px}
    .tray{display:flex; gap:8px} .pill{display:inline-block; padding:4px 10px; border-radius:999px; border:1px solid rgba(201,167,83,.5); background:rgba(201,167,83,.08); color:var(--gold);} .pill.bad{border-color:var(--red); color:#fca5a5; background:rgba(185,28,28,.12)}
    main{display:grid; grid-template-columns:300px 1fr 320px; gap:16px; padding:18px; max-width:1300px; margin:0 auto}
    .card{background:linear-gradient(180deg, rgba(255,255,255,.02), rgba(0,0,0,.28)); border:1px solid var(--panel-edge); border-radius:14px; padding:16px; box-shadow:var(--shadow);} h2{font-family:'Cinzel', serif; font-size:16px; margin:0 0 10px; color:var(--gold-soft); letter-spacing:.06em}
    select, input[type=text], input[type=number]{width:100%; padding:8px 10px; border-radius:10px; border:1px solid #243042; background:#0a0f16; color:var(--text); outline:none}
    select:focus, input:focus{border-color:var(--gold); box-shadow:0 0 0 2px rgba(201,167,83,.25)}
    button{cursor:pointer; padding:10px 14px; border-radius:12px; border:1px solid rgba(201,167,83,.45); background:linear-gradient(180deg,#1a2330,#0e141e); color:#f3f4f6; font-weight:700; letter-spacing:.04em;} button:hover{filter:brightness(1.08)} button:active{transform:translateY(1px)}
    #btn-evaluate{display:block; width:100%; margin-top:14px; padding:13px 16px; font-size:15px; background:linear-gradient(180deg, #c9a753, #9b7e37); color:#0a0c10; border-color:#e8d6a6; text-transform:uppercase}
    .fld{display:flex; flex-direction:column; gap:4px; font-size:12px; color:var(--muted); margin-bottom:8px}
    .pgrid{display:grid; grid-template-columns:repeat(4, 1fr); gap:8px}
    .profile{border:1px solid #263145; border-radius:12px; padding:12px; margin-bottom:10px; background:linear-gradient(180deg, rgba(255,255,255,.02), rgba(0,0,0,.18))}
    .phead{display:flex; gap:8px; align-items:center; margin-bottom:8px} .phead input{flex:1} .phead button{padding:6px 10px; border-color:#3b2530; color:#fca5a5}
    details{margin-top:6px} summary{cursor:pointer; color:var(--muted); font-size:12px; letter-spacing:.04em} details .pgrid{margin-top:8px}
    .chk{display:flex; flex-direction:row; align-items:center; gap:8px; font-size:12px; color:var(--muted)} .chk input{width:auto}
    table{width:100%; border-collapse:collapse} th,td{text-align:left; padding:6px 8px; border-bottom:1px solid #1c2533; font-size:13px} thead th{color:var(--gold-soft); font-size:11px; letter-spacing:.06em; text-transform:uppercase} td.num,th.num{text-align:right; font-variant-numeric:tabular-nums}
    #total{margin-top:10px; font-weight:700; color:var(--gold-soft)} #best{font-size:13px} .muted{color:var(--muted)}
    #errbox{display:none; margin-top:10px; padding:10px; border:1px solid var(--red); border-radius:10px; background:rgba(185,28,28,.12); color:#fca5a5; font-size:13px; white-space:pre-wrap}
    @media (max-width: 1100px){ main{ grid-template-columns:1fr; padding:12px; gap:12px } .pgrid{ grid-template-columns:repeat(2, 1fr) } }
  </style>
</head>
<body>
  <header class="site-header">
    <div class="brand"><span class="die">&#9861;</span><span class="wordmark">DAMAGE CALC</span></div>
    <div class="tray"><span id="status" class="pill">Connecting</span><span class="pill" title="Build version">v{{BUILD_VERSION}}</span></div>
  </header>
  <main>
    <section class="card" id="setup">
      <h2>Defender</h2>
      <label class="fld">Save <select id="def-save"></select></label>
      <label class="fld">Save modifier <input id="def-savemod" type="number" value="0" min="-3" max="3" step="1" /></label>
      <label class="fld">Ward <select id="def-ward"></select></label>
      <h2>Presets</h2>
      <label class="fld">Unit <select id="preset-select"></select></label>
      <button id="btn-load">Load preset</button>
      <div id="preset-desc" class="muted" style="font-size:12px; margin-top:6px"></div>
      <button id="btn-evaluate">Evaluate</button>
      <div id="errbox"></div>
    </section>
    <section class="card">
      <h2>Attack Profiles</h2>
      <div id="profiles"></div>
      <button id="btn-add">+ Add profile</button>
    </section>
    <section class="card">
      <h2>Results</h2>
      <div id="results" class="muted">Evaluate to see expected damage.</div>
      <div id="total"></div>
      <h2 style="margin-top:16px">Daily Best</h2>
      <div id="best" class="muted">&hellip;</div>
    </section>
  </main>
  <script>
    function $(id){ return document.getElementById(id); }
    var ws = null, pendingEval = null, presetList = [];

    function setStatus(txt, bad){ var s = $('status'); s.textContent = txt; s.className = bad ? 'pill bad' : 'pill'; }
    function showError(msg){ var e = $('errbox'); e.textContent = msg; e.style.display = 'block'; }
    function clearError(){ $('errbox').style.display = 'none'; }
    function esc(s){ return String(s).replace(/&/g,'&amp;').replace(/</g,'&lt;').replace(/>/g,'&gt;'); }
    function fmtMod(m){ return (m >= 0 ? '+' : '') + m; }

    function targetOpts(sel){
      var out = '';
      for (var v = 2; v <= 6; v++) out += '<option value="'+v+'"'+(v===sel?' selected':'')+'>'+v+'+</option>';
      return out;
    }
    function wardOpts(sel){
      var out = '<option value="0"'+(sel===0?' selected':'')+'>None</option>';
      for (var v = 2; v <= 6; v++) out += '<option value="'+v+'"'+(v===sel?' selected':'')+'>'+v+'+</option>';
      return out;
    }
    function listOpts(vals, sel){
      return vals.map(function(v){ return '<option value="'+v+'"'+(v===sel?' selected':'')+'>'+v+'</option>'; }).join('');
    }

    function defaultEffects(){
      return { reroll_hit:'none', reroll_wound:'none', explode_on_hit_6:0, autowound_on_hit_6:false,
        mortal_on_hit_6_value:'', mortal_on_hit_6_mode:'instead', continue_to_wound_after_mortal_on_hit:false,
        mortal_on_wound_6_value:'', mortal_on_wound_6_mode:'instead', explode_applies_to_autowounds:true };
    }
    function defaultProfile(){
      return { name:'', attacks:4, hit:3, wound:3, rend:-1, damage:'2', hit_mod:0, wound_mod:0, effects: defaultEffects() };
    }

    function addProfile(p){
      var n = document.querySelectorAll('#profiles .profile').length + 1;
      if (n > 20) return;
      p = Object.assign(defaultProfile(), p || {});
      p.effects = Object.assign(defaultEffects(), p.effects || {});
      if (!p.name) p.name = 'Weapon ' + n;
      var card = document.createElement('div');
      card.className = 'profile';
      card.innerHTML =
        '<div class="phead"><input type="text" class="f-name" placeholder="profile name" value="'+esc(p.name)+'" />' +
        '<button type="button" class="f-remove" title="Remove">&times;</button></div>' +
        '<div class="pgrid">' +
        '<label class="fld">Attacks<input type="number" class="f-attacks" min="0" max="200" step="1" value="'+p.attacks+'" /></label>' +
        '<label class="fld">Hit<select class="f-hit">'+targetOpts(p.hit)+'</select></label>' +
        '<label class="fld">Wound<select class="f-wound">'+targetOpts(p.wound)+'</select></label>' +
        '<label class="fld">Rend<input type="number" class="f-rend" min="-6" max="0" step="1" value="'+p.rend+'" /></label>' +
        '<label class="fld">Damage<input type="text" class="f-damage" value="'+esc(p.damage)+'" placeholder="e.g. d3+1" /></label>' +
        '<label class="fld">Hit mod<input type="number" class="f-hitmod" min="-3" max="3" step="1" value="'+p.hit_mod+'" /></label>' +
        '<label class="fld">Wound mod<input type="number" class="f-woundmod" min="-3" max="3" step="1" value="'+p.wound_mod+'" /></label>' +
        '</div>' +
        '<details><summary>Effects</summary><div class="pgrid">' +
        '<label class="fld">Re-roll hits<select class="f-rrhit">'+listOpts(['none','ones','failed'], p.effects.reroll_hit)+'</select></label>' +
        '<label class="fld">Re-roll wounds<select class="f-rrwound">'+listOpts(['none','ones','failed'], p.effects.reroll_wound)+'</select></label>' +
        '<label class="fld">Extra hits on 6<input type="number" class="f-explode" min="0" max="5" step="1" value="'+p.effects.explode_on_hit_6+'" /></label>' +
        '<label class="fld chk"><input type="checkbox" class="f-autowound"'+(p.effects.autowound_on_hit_6?' checked':'')+' />6s auto-wound</label>' +
        '<label class="fld">Mortals on hit 6<input type="text" class="f-mhitval" value="'+esc(p.effects.mortal_on_hit_6_value)+'" placeholder="e.g. d3" /></label>' +
        '<label class="fld">Hit mortal mode<select class="f-mhitmode">'+listOpts(['instead','in_addition'], p.effects.mortal_on_hit_6_mode)+'</select></label>' +
        '<label class="fld chk"><input type="checkbox" class="f-continue"'+(p.effects.continue_to_wound_after_mortal_on_hit?' checked':'')+' />Continue to wound</label>' +
        '<label class="fld">Mortals on wound 6<input type="text" class="f-mwoundval" value="'+esc(p.effects.mortal_on_wound_6_value)+'" placeholder="e.g. 1" /></label>' +
        '<label class="fld">Wound mortal mode<select class="f-mwoundmode">'+listOpts(['instead','in_addition'], p.effects.mortal_on_wound_6_mode)+'</select></label>' +
        '<label class="fld chk"><input type="checkbox" class="f-explodeauto"'+(p.effects.explode_applies_to_autowounds?' checked':'')+' />Extra hits can auto-wound</label>' +
        '</div></details>';
      card.querySelector('.f-remove').onclick = function(){ card.remove(); };
      $('profiles').appendChild(card);
    }

    function intVal(el){ var v = parseInt(el.value, 10); return isNaN(v) ? 0 : v; }
    function readProfile(card, idx){
      function q(cls){ return card.querySelector(cls); }
      return {
        name: q('.f-name').value || ('profile ' + (idx + 1)),
        attacks: intVal(q('.f-attacks')),
        hit: intVal(q('.f-hit')),
        wound: intVal(q('.f-wound')),
        rend: intVal(q('.f-rend')),
        damage: q('.f-damage').value,
        hit_mod: intVal(q('.f-hitmod')),
        wound_mod: intVal(q('.f-woundmod')),
        effects: {
          reroll_hit: q('.f-rrhit').value,
          reroll_wound: q('.f-rrwound').value,
          explode_on_hit_6: intVal(q('.f-explode')),
          autowound_on_hit_6: q('.f-autowound').checked,
          mortal_on_hit_6_value: q('.f-mhitval').value,
          mortal_on_hit_6_mode: q('.f-mhitmode').value,
          continue_to_wound_after_mortal_on_hit: q('.f-continue').checked,
          mortal_on_wound_6_value: q('.f-mwoundval').value,
          mortal_on_wound_6_mode: q('.f-mwoundmode').value,
          explode_applies_to_autowounds: q('.f-explodeauto').checked
        }
      };
    }

    function readPayload(){
      var cards = [].slice.call(document.querySelectorAll('#profiles .profile'));
      return {
        defender: { save: intVal($('def-save')), save_mod: intVal($('def-savemod')), ward: intVal($('def-ward')) },
        profiles: cards.map(readProfile)
      };
    }

    function connect(){
      var proto = (location.protocol === 'https:' ? 'wss' : 'ws');
      ws = new WebSocket(proto + '://' + location.host + '/ws');
      ws.onopen = function(){
        setStatus('Connected');
        if (pendingEval){ send('evaluate', pendingEval); pendingEval = null; }
      };
      ws.onmessage = function(ev){
        var msg = JSON.parse(ev.data);
        if (msg.type === 'results') onResults(msg.data);
        if (msg.type === 'error'){ setStatus('Error', true); showError(msg.data.message); }
      };
      ws.onclose = function(){ setStatus('Disconnected', true); ws = null; };
    }
    function send(type, data){ ws && ws.readyState === 1 && ws.send(JSON.stringify({type: type, data: data})); }

    function evaluate(){
      clearError();
      var payload = readPayload();
      if (payload.profiles.length === 0){ showError('Add at least one profile.'); return; }
      if (ws && ws.readyState === 1){ send('evaluate', payload); }
      else { pendingEval = payload; connect(); }
    }

    function onResults(d){
      clearError();
      setStatus('Connected');
      var rows = d.results.map(function(r){
        var tip = 'normal ' + r.breakdown.normal_damage.toFixed(3) + ' / mortal ' + r.breakdown.mortal_damage.toFixed(3);
        return '<tr><td>'+esc(r.name)+'</td><td class="num">'+r.attacks+'</td>' +
          '<td>'+r.hit+' ('+fmtMod(r.hit_mod)+')</td><td>'+r.wound+' ('+fmtMod(r.wound_mod)+')</td>' +
          '<td class="num">'+r.rend+'</td><td>'+esc(r.damage)+'</td>' +
          '<td class="num" title="'+tip+'">'+r.expected_damage.toFixed(3)+'</td></tr>';
      }).join('');
      $('results').innerHTML = '<table><thead><tr><th>Profile</th><th class="num">Atk</th><th>Hit</th><th>Wound</th>' +
        '<th class="num">Rend</th><th>Dmg</th><th class="num">Expected</th></tr></thead><tbody>'+rows+'</tbody></table>';
      $('total').textContent = 'Total expected damage: ' + d.total.toFixed(3);
      loadBest();
    }

    function loadPresets(){
      fetch('/api/presets').then(function(r){ return r.json(); }).then(function(list){
        presetList = list || [];
        $('preset-select').innerHTML = presetList.map(function(p, i){
          return '<option value="'+i+'">'+esc(p.name)+'</option>';
        }).join('');
        showPresetDesc();
      }).catch(function(){ /* presets are optional */ });
    }
    function showPresetDesc(){
      var p = presetList[intVal($('preset-select'))];
      $('preset-desc').textContent = (p && p.description) ? p.description : '';
    }
    function loadBest(){
      fetch('/api/best').then(function(r){ return r.json(); }).then(function(d){
        if (d && d.profile){
          $('best').innerHTML = '<b>'+esc(d.profile)+'</b> &middot; '+d.expected_damage.toFixed(3)+
            ' <span class="muted">('+esc(d.source || 'api')+', '+esc(d.date)+')</span>';
        } else {
          $('best').textContent = 'No evaluations yet today.';
        }
      }).catch(function(){ $('best').textContent = 'Unavailable.'; });
    }

    $('def-save').innerHTML = targetOpts(4);
    $('def-ward').innerHTML = wardOpts(0);
    $('btn-add').onclick = function(){ addProfile(null); };
    $('btn-load').onclick = function(){
      var p = presetList[intVal($('preset-select'))];
      if (p) addProfile(p.profile);
    };
    $('preset-select').onchange = showPresetDesc;
    $('btn-evaluate').onclick = evaluate;

    addProfile(null);
    addProfile(null);
    loadPresets();
    loadBest();
    connect();
    setInterval(function(){ send('ping', {}); }, 30000);
  </script>
</body>
</html>
`
