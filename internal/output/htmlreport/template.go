package htmlreport

const reportTemplate = `<h2>Taxonomy Analysis</h2>
<strong><font color="red" size="4">Warning:</font></strong>
<font size="4"> experimental software; not suitable for publication</font>
<p>
<table style="width:100%;border:1px solid;">
  <tr>
    <th align="right" width=10%>Percent&emsp;</th>
    <th align="left">Taxon</th>
    <th align="center">Enriched</th>
    <th align="center">nt90</th>
    <th align="right">Total nt sequences</th>
  </tr>
  <tr>
    <td align="right">{{percent .Unclassified.Score}}&emsp;</td>
    <td>unclassified</td>
    <td align="center">{{notMeasured}}</td>
    <td align="center">{{notMeasured}}</td>
    <td align="right">{{.Unclassified.NtSeqs}}</td>
  </tr>
{{- range .Rows}}
  <tr>
    <td align="right">{{percent .Score}}&emsp;</td>
    <td>{{taxon .}}</td>
    <td align="center">{{enrichment .Enrichment}}</td>
    <td align="center">{{nt90 .NT90Flag}}</td>
    <td align="right">{{.NTTotal}}</td>
  </tr>
{{- end}}
</table>
<p>Top {{.TopN}} taxa, identified by
<a href="http://www.ccb.jhu.edu/software/centrifuge/manual.shtml">Centrifuge</a>
{{- with .ClassifierVersion}} (version {{.}}){{end}}, querying the NCBI
<a href="https://www.ncbi.nlm.nih.gov/nucleotide">nt</a> database of
{{grouped .TotalNtSeqs}} sequences spanning {{gbp .TotalNtLength}}Gbp
{{- with .DatabaseDate}} (downloaded {{.}}){{end}}.</p>
<h4>Columns:</h4>
<ul>
  <li><strong>Enriched</strong>: {{enriched}} when the taxon's share of its parent's
    reads is significantly larger (one-sided z-test, p &le; 0.05) than its share
    of the parent's nt sequences, or when it holds at least 90% of the parent's
    reads; {{notEnriched}} otherwise. Taxa below a {{notEnriched}} are not tested
    ({{notMeasured}}).</li>
  <li><strong>nt90</strong>: {{nt90Warning}} when fewer than 5 nt sequences account for
    90% of the reads assigned to the taxon. Such assignments are fragile and
    may come from a single mislabeled or contaminated reference.</li>
</ul>
<h4>Caveats:</h4>
<ul>
  <li>The "unclassified" category includes reads that did not match anything
    in the nt database, and reads that matched sequences with an unspecified
    or unknown taxonomy.</li>
  <li>The value for a taxon is the percent of all reads assigned to that taxon
    <strong>or</strong> any taxon below it.</li>
  <li>Reads from one organism may align equally well to related organisms,
    especially those well represented in nt. Reads matching several taxa are
    split fractionally between them rather than assigned to their lowest
    common ancestor.</li>
  <li>Some nt sequences are mislabeled or contaminated (e.g. with vectors), so
    reads may be assigned to unexpected taxa.</li>
  <li>The table follows the major levels (DKPCOFGS) of the NCBI
    <a href="https://www.ncbi.nlm.nih.gov/taxonomy">taxonomy</a>. Some branches
    skip a level, so indentation does not correspond to a fixed rank, and
    taxa below the cutoff are omitted without hiding their descendants.</li>
</ul>
`
