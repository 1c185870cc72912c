package docx

import (
	"bytes"
	"encoding/xml"
	"text/template"
)

var templateFuncs = template.FuncMap{
	"esc": func(s string) string {
		var buf bytes.Buffer
		_ = xml.EscapeText(&buf, []byte(s))
		return buf.String()
	},
	"hp":    halfPoints,
	"twips": pointsToTwips,
	"date":  w3cdtf,
	"indent": func(level int) int {
		return 720 * (level + 1)
	},
	"bullet": func(level int) string {
		return []string{"•", "◦", "▪"}[level%3]
	},
	"inc": func(i int) int { return i + 1 },
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).Parse(text))
}

var contentTypesTmpl = mustTemplate("content-types", `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`+
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`+
	`<Default Extension="xml" ContentType="application/xml"/>`+
	`<Default Extension="png" ContentType="image/png"/>`+
	`<Default Extension="jpeg" ContentType="image/jpeg"/>`+
	`<Default Extension="gif" ContentType="image/gif"/>`+
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`+
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`+
	`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>`+
	`<Override PartName="/word/settings.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"/>`+
	`{{if .HasHeader}}<Override PartName="/word/header1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>{{end}}`+
	`{{if .HasFooter}}<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>{{end}}`+
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`+
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`+
	`</Types>`)

var rootRelsTmpl = mustTemplate("root-rels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
	`<Relationship Id="rId1" Type="`+relBase+`officeDocument" Target="word/document.xml"/>`+
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>`+
	`<Relationship Id="rId3" Type="`+relBase+`extended-properties" Target="docProps/app.xml"/>`+
	`</Relationships>`)

var documentRelsTmpl = mustTemplate("document-rels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
	`<Relationship Id="rIdStyles" Type="`+relBase+`styles" Target="styles.xml"/>`+
	`<Relationship Id="rIdNumbering" Type="`+relBase+`numbering" Target="numbering.xml"/>`+
	`<Relationship Id="rIdSettings" Type="`+relBase+`settings" Target="settings.xml"/>`+
	`{{if .HasHeader}}<Relationship Id="rIdHeader" Type="`+relBase+`header" Target="header1.xml"/>{{end}}`+
	`{{if .HasFooter}}<Relationship Id="rIdFooter" Type="`+relBase+`footer" Target="footer1.xml"/>{{end}}`+
	`{{range .Images}}<Relationship Id="{{.RelID}}" Type="`+relBase+`image" Target="{{.Target}}"/>{{end}}`+
	`</Relationships>`)

var coreTmpl = mustTemplate("core", `<cp:coreProperties`+
	` xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"`+
	` xmlns:dc="http://purl.org/dc/elements/1.1/"`+
	` xmlns:dcterms="http://purl.org/dc/terms/"`+
	` xmlns:dcmitype="http://purl.org/dc/dcmitype/"`+
	` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`+
	`<dc:title>{{esc .Props.Title}}</dc:title>`+
	`<dc:subject>{{esc .Props.Subject}}</dc:subject>`+
	`<dc:creator>{{esc .Props.Creator}}</dc:creator>`+
	`<cp:keywords>{{esc .Props.Keywords}}</cp:keywords>`+
	`<dc:description>{{esc .Props.Description}}</dc:description>`+
	`{{if not .Props.Created.IsZero}}`+
	`<dcterms:created xsi:type="dcterms:W3CDTF">{{date .Props.Created}}</dcterms:created>`+
	`<dcterms:modified xsi:type="dcterms:W3CDTF">{{date .Props.Created}}</dcterms:modified>`+
	`{{end}}`+
	`</cp:coreProperties>`)

var appTmpl = mustTemplate("app", `<Properties`+
	` xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"`+
	` xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">`+
	`<Application>go-md2docx</Application>`+
	`</Properties>`)

var settingsTmpl = mustTemplate("settings", `<w:settings `+nsMain+`>`+
	`<w:defaultTabStop w:val="720"/>`+
	`<w:characterSpacingControl w:val="doNotCompress"/>`+
	`<w:updateFields w:val="true"/>`+
	`<w:compat><w:compatSetting w:name="compatibilityMode" w:uri="http://schemas.microsoft.com/office/word" w:val="15"/></w:compat>`+
	`</w:settings>`)

var numberingTmpl = mustTemplate("numbering", `<w:numbering `+nsMain+`>`+
	`<w:abstractNum w:abstractNumId="0"><w:multiLevelType w:val="hybridMultilevel"/>`+
	`{{range .BulletLevels}}`+
	`<w:lvl w:ilvl="{{.}}"><w:start w:val="1"/><w:numFmt w:val="bullet"/>`+
	`<w:lvlText w:val="{{bullet .}}"/><w:lvlJc w:val="left"/>`+
	`<w:pPr><w:ind w:left="{{indent .}}" w:hanging="360"/></w:pPr></w:lvl>`+
	`{{end}}`+
	`</w:abstractNum>`+
	`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>`+
	`</w:numbering>`)

var stylesTmpl = mustTemplate("styles", `{{$s := .Settings}}<w:styles `+nsMain+`>`+
	`<w:docDefaults><w:rPrDefault><w:rPr>`+
	`<w:rFonts w:ascii="{{esc $s.Font}}" w:hAnsi="{{esc $s.Font}}" w:eastAsia="{{esc $s.Font}}" w:cs="{{esc $s.Font}}"/>`+
	`<w:sz w:val="{{hp $s.FontSize}}"/><w:szCs w:val="{{hp $s.FontSize}}"/><w:lang w:val="en-US"/>`+
	`</w:rPr></w:rPrDefault>`+
	`<w:pPrDefault><w:pPr><w:spacing w:after="{{twips $s.SpaceAfter}}" w:line="259" w:lineRule="auto"/></w:pPr></w:pPrDefault>`+
	`</w:docDefaults>`+

	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>`+

	`{{range $i, $c := $s.HeadingColors}}`+
	`<w:style w:type="paragraph" w:styleId="Heading{{inc $i}}"><w:name w:val="heading {{inc $i}}"/>`+
	`<w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:uiPriority w:val="9"/><w:qFormat/>`+
	`<w:pPr><w:keepNext/><w:keepLines/><w:spacing w:before="240" w:after="80"/><w:outlineLvl w:val="{{$i}}"/></w:pPr>`+
	`<w:rPr><w:b/><w:bCs/><w:color w:val="{{esc $c}}"/>`+
	`<w:sz w:val="{{hp (index $s.HeadingSizes $i)}}"/><w:szCs w:val="{{hp (index $s.HeadingSizes $i)}}"/></w:rPr>`+
	`</w:style>`+
	`{{end}}`+

	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:uiPriority w:val="10"/><w:qFormat/>`+
	`<w:pPr><w:spacing w:after="160"/><w:jc w:val="center"/></w:pPr>`+
	`<w:rPr><w:b/><w:bCs/><w:color w:val="{{esc $s.TitleColor}}"/><w:sz w:val="{{hp $s.TitleSize}}"/><w:szCs w:val="{{hp $s.TitleSize}}"/></w:rPr></w:style>`+

	`<w:style w:type="paragraph" w:styleId="Subtitle"><w:name w:val="Subtitle"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:uiPriority w:val="11"/><w:qFormat/>`+
	`<w:pPr><w:spacing w:after="480"/><w:jc w:val="center"/></w:pPr>`+
	`<w:rPr><w:color w:val="{{esc $s.SubtitleColor}}"/><w:sz w:val="{{hp $s.SubtitleSize}}"/><w:szCs w:val="{{hp $s.SubtitleSize}}"/></w:rPr></w:style>`+

	`<w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/><w:basedOn w:val="Normal"/><w:uiPriority w:val="36"/>`+
	`<w:pPr><w:numPr><w:numId w:val="1"/></w:numPr><w:spacing w:after="60"/><w:contextualSpacing/></w:pPr></w:style>`+

	`<w:style w:type="paragraph" w:styleId="TOCHeading"><w:name w:val="TOC Heading"/><w:basedOn w:val="Heading1"/><w:next w:val="Normal"/><w:uiPriority w:val="39"/><w:qFormat/>`+
	`<w:pPr><w:outlineLvl w:val="9"/></w:pPr></w:style>`+

	`<w:style w:type="paragraph" w:styleId="Code"><w:name w:val="Code"/><w:basedOn w:val="Normal"/><w:qFormat/>`+
	`<w:pPr><w:spacing w:before="120" w:after="120" w:line="240" w:lineRule="auto"/></w:pPr>`+
	`<w:rPr><w:rFonts w:ascii="{{esc $s.CodeFont}}" w:hAnsi="{{esc $s.CodeFont}}" w:cs="{{esc $s.CodeFont}}"/>`+
	`<w:color w:val="{{esc $s.CodeColor}}"/><w:sz w:val="{{hp $s.CodeFontSize}}"/><w:szCs w:val="{{hp $s.CodeFontSize}}"/></w:rPr></w:style>`+

	`<w:style w:type="paragraph" w:styleId="Header"><w:name w:val="header"/><w:basedOn w:val="Normal"/>`+
	`<w:pPr><w:spacing w:after="0"/></w:pPr></w:style>`+
	`<w:style w:type="paragraph" w:styleId="Footer"><w:name w:val="footer"/><w:basedOn w:val="Normal"/>`+
	`<w:pPr><w:spacing w:after="0"/></w:pPr></w:style>`+

	`<w:style w:type="table" w:default="1" w:styleId="TableNormal"><w:name w:val="Normal Table"/><w:uiPriority w:val="99"/><w:semiHidden/><w:unhideWhenUsed/>`+
	`<w:tblPr><w:tblInd w:w="0" w:type="dxa"/><w:tblCellMar><w:top w:w="0" w:type="dxa"/><w:left w:w="108" w:type="dxa"/><w:bottom w:w="0" w:type="dxa"/><w:right w:w="108" w:type="dxa"/></w:tblCellMar></w:tblPr></w:style>`+

	`<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/><w:basedOn w:val="TableNormal"/><w:uiPriority w:val="39"/>`+
	`<w:pPr><w:spacing w:after="0" w:line="240" w:lineRule="auto"/></w:pPr>`+
	`<w:tblPr><w:tblBorders>`+
	`<w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>`+
	`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>`+
	`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/>`+
	`</w:tblBorders></w:tblPr></w:style>`+
	`</w:styles>`)
