package templates

const nodeBasePrompt = `<boltArtifact id="project-import" title="Project Files"><boltAction type="file" filePath="index.js">// run 'node index.js' in the terminal

console.log('Hello World!');
</boltAction><boltAction type="file" filePath="package.json">{
  "name": "node-starter",
  "private": true,
  "version": "0.0.0",
  "type": "commonjs",
  "scripts": {
    "start": "node index.js"
  }
}
</boltAction></boltArtifact>`
