package epub

// DefaultStylesheet is linked from every document of the book.
const DefaultStylesheet = `@namespace epub "http://www.idpf.org/2007/ops";
body {
    font-family: "Noto Sans CJK SC", "Noto Sans SC", "Source Han Sans CN", serif;
    margin: 5%;
    text-align: justify;
}
h1, h2 {
    text-align: center;
    font-weight: bold;
    margin-top: 1em;
    margin-bottom: 1em;
}
p {
    margin: 1em 0;
    line-height: 1.5em;
}
.center {
    text-align: center;
}
.strong {
    font-weight: bold;
}
img {
    max-width: 100%;
    height: auto;
}
`
