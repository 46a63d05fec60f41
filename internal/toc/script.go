package toc

// Script is injected once before </body> on every page that gets a TOC.
// It keys on the data-toc attribute Render puts on the list, so it does not
// depend on the configured list id.
const Script = `<script>
(function () {
  var list = document.querySelector("ol[data-toc]");
  if (!list) return;
  var links = Array.prototype.slice.call(list.querySelectorAll("a[href^='#']"));
  var byId = {};
  var targets = [];
  links.forEach(function (link) {
    var id = decodeURIComponent(link.getAttribute("href").slice(1));
    var target = document.getElementById(id);
    if (!target) return;
    byId[id] = link;
    targets.push(target);
    link.addEventListener("click", function (event) {
      event.preventDefault();
      target.scrollIntoView({ behavior: "smooth", block: "start" });
      if (history.replaceState) history.replaceState(null, "", "#" + id);
      activate(id);
    });
  });

  function activate(id) {
    links.forEach(function (link) {
      link.classList.remove("active");
      link.removeAttribute("aria-current");
    });
    var link = byId[id];
    if (link) {
      link.classList.add("active");
      link.setAttribute("aria-current", "true");
    }
  }

  if (!("IntersectionObserver" in window) || targets.length === 0) return;
  var visible = {};
  var observer = new IntersectionObserver(function (entries) {
    entries.forEach(function (entry) {
      if (entry.isIntersecting) {
        visible[entry.target.id] = entry.boundingClientRect.top;
      } else {
        delete visible[entry.target.id];
      }
    });
    var best = null;
    Object.keys(visible).forEach(function (id) {
      if (best === null || Math.abs(visible[id]) < Math.abs(visible[best])) best = id;
    });
    if (best !== null) activate(best);
  }, { rootMargin: "0px 0px -60% 0px", threshold: [0, 1] });
  targets.forEach(function (target) { observer.observe(target); });
})();
</script>`
